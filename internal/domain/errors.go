package domain

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("notification not found")
	ErrDelivery   = errors.New("delivery failed")
)
