package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/service"
)

type SMSService interface {
	Send(ctx context.Context, input service.SendSMSInput) (*service.SMSResult, error)
	Logs(ctx context.Context, userID int64) ([]domain.SMSNotification, error)
}

type SMSHandler struct {
	service SMSService
}

func NewSMSHandler(service SMSService) (*SMSHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("sms service is required")
	}
	return &SMSHandler{service: service}, nil
}

func RegisterSMSRoutes(router fiber.Router, service SMSService) error {
	h, err := NewSMSHandler(service)
	if err != nil {
		return err
	}

	sms := router.Group("/sms")
	sms.Post("/send", h.SendSMS)
	sms.Get("/logs/:user_id", h.Logs)

	return nil
}

type sendSMSResponse struct {
	Message string  `json:"message"`
	SID     *string `json:"sid"`
	ID      string  `json:"id"`
}

type smsLogsResponse struct {
	Logs []domain.SMSNotification `json:"logs"`
}

func (h *SMSHandler) SendSMS(c *fiber.Ctx) error {
	var req service.SendSMSInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, errInvalidBody)
	}

	result, err := h.service.Send(c.UserContext(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendSMSResponse{
		Message: "SMS processed",
		SID:     result.Notification.SID,
		ID:      result.Notification.ID,
	})
}

func (h *SMSHandler) Logs(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	logs, err := h.service.Logs(c.UserContext(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(smsLogsResponse{Logs: logs})
}
