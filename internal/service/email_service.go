package service

import (
	"context"
	"fmt"

	"github.com/kursadbilgin/notify-api/internal/demo"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"github.com/kursadbilgin/notify-api/internal/provider"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"github.com/kursadbilgin/notify-api/internal/validation"
	"go.uber.org/zap"
)

type SendEmailInput struct {
	UserID  *int64 `json:"user_id" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type EmailResult struct {
	Notification domain.EmailNotification
	Outcome      domain.DeliveryOutcome
}

type EmailService struct {
	base
	store    repository.LogStore[domain.EmailNotification]
	mailer   provider.Mailer
	fallback *demo.Fallback[domain.EmailNotification]
}

// NewEmailService builds the email channel. mailer may be nil, in which case
// every send is recorded as undelivered.
func NewEmailService(
	store repository.LogStore[domain.EmailNotification],
	mailer provider.Mailer,
	fallback *demo.Fallback[domain.EmailNotification],
	logger *zap.Logger,
) (*EmailService, error) {
	if store == nil {
		return nil, fmt.Errorf("email store is required")
	}

	return &EmailService{
		base:     newBase(logger),
		store:    store,
		mailer:   mailer,
		fallback: fallback,
	}, nil
}

// Send records the request as sent, then attempts delivery. A delivery
// failure flips the record to unsent and is reported only through the
// returned outcome.
func (s *EmailService) Send(ctx context.Context, input SendEmailInput) (*EmailResult, error) {
	if err := validation.ValidateStruct(&input); err != nil {
		return nil, err
	}

	notification := domain.EmailNotification{
		ID:        s.newID(),
		UserID:    *input.UserID,
		EmailTo:   input.Email,
		Subject:   input.Subject,
		Body:      input.Body,
		Sent:      true,
		CreatedAt: s.timestamp(),
	}

	if err := s.store.Append(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to record email notification: %w", err)
	}
	s.metrics.IncNotificationRecorded(domain.ChannelEmail.String())

	logger := observability.WithContextLogger(s.logger, ctx).With(
		zap.String("notificationId", notification.ID),
		zap.Int64("userId", notification.UserID),
	)

	if err := s.deliver(ctx, notification); err != nil {
		logger.Error("email delivery failed", zap.Error(err))
		s.metrics.IncNotificationFailed(domain.ChannelEmail.String(), provider.FailureReason(err))

		if updateErr := s.store.Update(ctx, notification.ID, func(n *domain.EmailNotification) {
			n.Sent = false
		}); updateErr != nil {
			logger.Error("failed to mark email notification as unsent", zap.Error(updateErr))
		}
		notification.Sent = false

		return &EmailResult{Notification: notification, Outcome: domain.OutcomeRecordedUndelivered}, nil
	}

	s.metrics.IncNotificationSent(domain.ChannelEmail.String())
	logger.Info("email delivered")

	return &EmailResult{Notification: notification, Outcome: domain.OutcomeSent}, nil
}

func (s *EmailService) deliver(ctx context.Context, notification domain.EmailNotification) error {
	if s.mailer == nil {
		return provider.ErrNotConfigured
	}

	start := s.now()
	err := s.mailer.Send(ctx, provider.Mail{
		To:       notification.EmailTo,
		Subject:  notification.Subject,
		HTMLBody: notification.Body,
	})
	s.metrics.ObserveNotificationSendDuration(domain.ChannelEmail.String(), s.now().Sub(start))

	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	return nil
}

// ListByUser returns the user's email log in insertion order.
func (s *EmailService) ListByUser(ctx context.Context, userID int64) ([]domain.EmailNotification, error) {
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list email notifications: %w", err)
	}
	return nonNil(s.fallback.Resolve(userID, records)), nil
}
