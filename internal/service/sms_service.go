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

type SendSMSInput struct {
	UserID *int64 `json:"user_id" validate:"required"`
	To     string `json:"to" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

type SMSResult struct {
	Notification domain.SMSNotification
	Outcome      domain.DeliveryOutcome
}

type SMSService struct {
	base
	store    repository.LogStore[domain.SMSNotification]
	gateway  provider.SMSGateway
	sender   string
	fallback *demo.Fallback[domain.SMSNotification]
}

// NewSMSService builds the SMS channel. gateway may be nil, in which case
// messages are recorded without a delivery attempt. sender overrides the
// gateway's own number when set.
func NewSMSService(
	store repository.LogStore[domain.SMSNotification],
	gateway provider.SMSGateway,
	sender string,
	fallback *demo.Fallback[domain.SMSNotification],
	logger *zap.Logger,
) (*SMSService, error) {
	if store == nil {
		return nil, fmt.Errorf("sms store is required")
	}

	return &SMSService{
		base:     newBase(logger),
		store:    store,
		gateway:  gateway,
		sender:   sender,
		fallback: fallback,
	}, nil
}

// Send delivers through the gateway when one is configured and records the
// message. A gateway failure is returned and nothing is recorded.
func (s *SMSService) Send(ctx context.Context, input SendSMSInput) (*SMSResult, error) {
	if err := validation.ValidateStruct(&input); err != nil {
		return nil, err
	}

	notification := domain.SMSNotification{
		ID:        s.newID(),
		UserID:    *input.UserID,
		To:        input.To,
		Body:      input.Body,
		CreatedAt: s.timestamp(),
	}

	logger := observability.WithContextLogger(s.logger, ctx).With(
		zap.String("notificationId", notification.ID),
		zap.Int64("userId", notification.UserID),
	)

	outcome := domain.OutcomeSkipped
	if s.gateway != nil {
		start := s.now()
		sid, err := s.gateway.Send(ctx, provider.SMS{
			From: s.sender,
			To:   notification.To,
			Body: notification.Body,
		})
		s.metrics.ObserveNotificationSendDuration(domain.ChannelSMS.String(), s.now().Sub(start))

		if err != nil {
			logger.Error("sms delivery failed", zap.Error(err))
			s.metrics.IncNotificationFailed(domain.ChannelSMS.String(), provider.FailureReason(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrDelivery, err)
		}

		notification.SID = &sid
		outcome = domain.OutcomeSent
		s.metrics.IncNotificationSent(domain.ChannelSMS.String())
	} else {
		logger.Info("sms gateway not configured, message not sent", zap.String("to", notification.To))
	}

	if err := s.store.Append(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to record sms notification: %w", err)
	}
	s.metrics.IncNotificationRecorded(domain.ChannelSMS.String())

	return &SMSResult{Notification: notification, Outcome: outcome}, nil
}

// Logs returns the user's SMS log in insertion order.
func (s *SMSService) Logs(ctx context.Context, userID int64) ([]domain.SMSNotification, error) {
	records, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sms notifications: %w", err)
	}
	return nonNil(s.fallback.Resolve(userID, records)), nil
}
