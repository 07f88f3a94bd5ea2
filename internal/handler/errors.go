package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notify-api/internal/domain"
)

const errInvalidBody = "invalid request body"

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDelivery):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	default:
		return err
	}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	raw := strings.TrimSpace(c.Params("user_id"))
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: user_id must be an integer", domain.ErrValidation)
	}
	return userID, nil
}
