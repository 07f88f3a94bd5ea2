package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kursadbilgin/notify-api/internal/demo"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"github.com/kursadbilgin/notify-api/internal/validation"
	"go.uber.org/zap"
)

const sampleMarkedReadNote = "Sample notification marked as read"

type CreateInAppInput struct {
	UserID           *int64  `json:"user_id" validate:"required"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	NotificationType string  `json:"notification_type" validate:"inapp_type"`
	Link             *string `json:"link"`
}

// MarkReadResult is the outcome of marking one notification read. Note is
// set when the id was unknown and demo mode accepted it anyway.
type MarkReadResult struct {
	Note string
}

type InAppService struct {
	base
	store    repository.LogStore[domain.InAppNotification]
	fallback *demo.Fallback[domain.InAppNotification]
}

func NewInAppService(
	store repository.LogStore[domain.InAppNotification],
	fallback *demo.Fallback[domain.InAppNotification],
	logger *zap.Logger,
) (*InAppService, error) {
	if store == nil {
		return nil, fmt.Errorf("in-app store is required")
	}

	return &InAppService{
		base:     newBase(logger),
		store:    store,
		fallback: fallback,
	}, nil
}

func (s *InAppService) Create(ctx context.Context, input CreateInAppInput) (*domain.InAppNotification, error) {
	if err := validation.ValidateStruct(&input); err != nil {
		return nil, err
	}

	notificationType, err := domain.ParseInAppType(input.NotificationType)
	if err != nil {
		return nil, err
	}

	notification := domain.InAppNotification{
		ID:               s.newID(),
		UserID:           *input.UserID,
		Title:            input.Title,
		Message:          input.Message,
		NotificationType: notificationType,
		Link:             input.Link,
		CreatedAt:        s.timestamp(),
	}

	if err := s.store.Append(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to record in-app notification: %w", err)
	}
	s.metrics.IncNotificationRecorded(domain.ChannelInApp.String())

	observability.WithContextLogger(s.logger, ctx).Debug("in-app notification created",
		zap.String("notificationId", notification.ID),
		zap.Int64("userId", notification.UserID),
		zap.String("type", notificationType.String()),
	)

	return &notification, nil
}

// List returns the user's notifications newest first. Records sharing a
// timestamp keep their insertion order.
func (s *InAppService) List(ctx context.Context, userID int64, unreadOnly bool) ([]domain.InAppNotification, error) {
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-app notifications: %w", err)
	}

	if unreadOnly {
		records = slices.DeleteFunc(records, func(n domain.InAppNotification) bool { return n.Read })
		// Samples include read entries, so they never stand in for an unread query.
		return nonNil(sortNewestFirst(records)), nil
	}

	return nonNil(s.fallback.Resolve(userID, sortNewestFirst(records))), nil
}

func sortNewestFirst(records []domain.InAppNotification) []domain.InAppNotification {
	slices.SortStableFunc(records, func(a, b domain.InAppNotification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return records
}

func (s *InAppService) MarkRead(ctx context.Context, id string) (*MarkReadResult, error) {
	err := s.store.Update(ctx, id, func(n *domain.InAppNotification) {
		n.Read = true
	})
	switch {
	case err == nil:
		return &MarkReadResult{}, nil
	case errors.Is(err, domain.ErrNotFound) && s.fallback.Enabled():
		return &MarkReadResult{Note: sampleMarkedReadNote}, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, err
	default:
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}
}

// MarkAllRead marks every unread notification of the user and returns how
// many changed.
func (s *InAppService) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	count, err := s.store.UpdateByUser(ctx, userID, func(n *domain.InAppNotification) bool {
		if n.Read {
			return false
		}
		n.Read = true
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return count, nil
}

func (s *InAppService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if !removed && !s.fallback.Enabled() {
		return domain.ErrNotFound
	}
	return nil
}
