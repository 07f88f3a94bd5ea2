package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/service"
)

type InAppService interface {
	Create(ctx context.Context, input service.CreateInAppInput) (*domain.InAppNotification, error)
	List(ctx context.Context, userID int64, unreadOnly bool) ([]domain.InAppNotification, error)
	MarkRead(ctx context.Context, id string) (*service.MarkReadResult, error)
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, id string) error
}

type InAppHandler struct {
	service InAppService
}

func NewInAppHandler(service InAppService) (*InAppHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("in-app service is required")
	}
	return &InAppHandler{service: service}, nil
}

func RegisterInAppRoutes(router fiber.Router, service InAppService) error {
	h, err := NewInAppHandler(service)
	if err != nil {
		return err
	}

	inapp := router.Group("/inapp")
	inapp.Post("/create", h.Create)
	inapp.Get("/user/:user_id", h.List)
	inapp.Put("/user/:user_id/mark-all-read", h.MarkAllRead)
	inapp.Put("/:id/mark-read", h.MarkRead)
	inapp.Delete("/:id", h.Delete)

	return nil
}

type successResponse struct {
	Success bool   `json:"success"`
	Note    string `json:"note,omitempty"`
}

type markAllReadResponse struct {
	Success         bool `json:"success"`
	MarkedReadCount int  `json:"marked_read_count"`
}

func (h *InAppHandler) Create(c *fiber.Ctx) error {
	var req service.CreateInAppInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, errInvalidBody)
	}

	created, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *InAppHandler) List(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	unreadOnly, err := parseBoolQuery(c.Query("unread_only"), "unread_only")
	if err != nil {
		return toHTTPError(err)
	}

	notifications, err := h.service.List(c.UserContext(), userID, unreadOnly)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *InAppHandler) MarkRead(c *fiber.Ctx) error {
	result, err := h.service.MarkRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(successResponse{Success: true, Note: result.Note})
}

func (h *InAppHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return toHTTPError(err)
	}

	count, err := h.service.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(markAllReadResponse{Success: true, MarkedReadCount: count})
}

func (h *InAppHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(successResponse{Success: true})
}

func parseBoolQuery(value string, field string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	parsed, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", domain.ErrValidation, field)
	}
	return parsed, nil
}
