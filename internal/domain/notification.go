package domain

import (
	"fmt"
	"strings"
	"time"
)

// Channel identifies one of the independent notification channels.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "inapp"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp:
		return true
	}
	return false
}

// InAppType is the presentation category of an in-app notification.
type InAppType string

const (
	InAppTypeInfo    InAppType = "info"
	InAppTypeWarning InAppType = "warning"
	InAppTypeError   InAppType = "error"
	InAppTypeSuccess InAppType = "success"
)

func (t InAppType) String() string { return string(t) }

func (t InAppType) IsValid() bool {
	switch t {
	case InAppTypeInfo, InAppTypeWarning, InAppTypeError, InAppTypeSuccess:
		return true
	}
	return false
}

// ParseInAppType parses a notification type, defaulting to info when empty.
func ParseInAppType(s string) (InAppType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return InAppTypeInfo, nil
	}

	t := InAppType(normalized)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: invalid notification_type %q", ErrValidation, s)
	}
	return t, nil
}

// DeliveryOutcome reports what happened to a record after its delivery step.
type DeliveryOutcome string

const (
	// OutcomeSent means the provider accepted the message.
	OutcomeSent DeliveryOutcome = "sent"
	// OutcomeRecordedUndelivered means the record was stored but delivery failed.
	OutcomeRecordedUndelivered DeliveryOutcome = "recorded_undelivered"
	// OutcomeSkipped means no provider was configured, so no attempt was made.
	OutcomeSkipped DeliveryOutcome = "skipped"
)

func (o DeliveryOutcome) String() string { return string(o) }

// EmailNotification is the log entry of one email send request.
type EmailNotification struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	EmailTo   string    `json:"email_to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}

func (n EmailNotification) RecordID() string { return n.ID }
func (n EmailNotification) OwnerID() int64   { return n.UserID }

// SMSNotification is the log entry of one SMS send request. SID stays nil
// until a gateway accepts the message.
type SMSNotification struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	SID       *string   `json:"sid"`
	CreatedAt time.Time `json:"created_at"`
}

func (n SMSNotification) RecordID() string { return n.ID }
func (n SMSNotification) OwnerID() int64   { return n.UserID }

// InAppNotification is a notification displayed inside the application.
type InAppNotification struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"user_id"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	NotificationType InAppType `json:"notification_type"`
	Link             *string   `json:"link"`
	Read             bool      `json:"read"`
	CreatedAt        time.Time `json:"created_at"`
}

func (n InAppNotification) RecordID() string { return n.ID }
func (n InAppNotification) OwnerID() int64   { return n.UserID }
