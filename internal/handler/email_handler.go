package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/service"
)

type EmailService interface {
	Send(ctx context.Context, input service.SendEmailInput) (*service.EmailResult, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.EmailNotification, error)
}

type EmailHandler struct {
	service EmailService
}

func NewEmailHandler(service EmailService) (*EmailHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("email service is required")
	}
	return &EmailHandler{service: service}, nil
}

func RegisterEmailRoutes(router fiber.Router, service EmailService) error {
	h, err := NewEmailHandler(service)
	if err != nil {
		return err
	}

	email := router.Group("/email")
	email.Post("/send_email", h.SendEmail)
	email.Get("/users/:user_id/notifications", h.ListUserNotifications)

	return nil
}

type sendEmailResponse struct {
	Message        string                 `json:"message"`
	NotificationID string                 `json:"notification_id"`
	Delivery       domain.DeliveryOutcome `json:"delivery"`
}

func (h *EmailHandler) SendEmail(c *fiber.Ctx) error {
	var req service.SendEmailInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, errInvalidBody)
	}

	result, err := h.service.Send(c.UserContext(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendEmailResponse{
		Message:        "Email notification processed",
		NotificationID: result.Notification.ID,
		Delivery:       result.Outcome,
	})
}

func (h *EmailHandler) ListUserNotifications(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	notifications, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}
