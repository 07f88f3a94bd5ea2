package provider

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultBreakerFailureThreshold = 5
	defaultBreakerOpenTimeout      = 30 * time.Second
)

// BreakerConfig controls when a provider circuit opens and how long it stays open.
type BreakerConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = defaultBreakerFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultBreakerOpenTimeout
	}
	return c
}

func newBreaker[T any](name string, cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[T] {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Rejections by the provider (bad recipient, bad payload) say nothing
		// about its health, so only transient failures count against it.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func breakerError(name string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &ProviderError{
			Message:   name + " circuit is open",
			Transient: true,
			Cause:     err,
		}
	}
	return err
}

// BreakerMailer guards a Mailer with a circuit breaker.
type BreakerMailer struct {
	next Mailer
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerMailer(next Mailer, cfg BreakerConfig, logger *zap.Logger) *BreakerMailer {
	return &BreakerMailer{
		next: next,
		cb:   newBreaker[struct{}]("mailer", cfg, logger),
	}
}

func (b *BreakerMailer) Send(ctx context.Context, mail Mail) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Send(ctx, mail)
	})
	return breakerError("mailer", err)
}

// State reports the current circuit state.
func (b *BreakerMailer) State() gobreaker.State {
	return b.cb.State()
}

// BreakerGateway guards an SMSGateway with a circuit breaker.
type BreakerGateway struct {
	next SMSGateway
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerGateway(next SMSGateway, cfg BreakerConfig, logger *zap.Logger) *BreakerGateway {
	return &BreakerGateway{
		next: next,
		cb:   newBreaker[string]("sms_gateway", cfg, logger),
	}
}

func (b *BreakerGateway) Send(ctx context.Context, sms SMS) (string, error) {
	sid, err := b.cb.Execute(func() (string, error) {
		return b.next.Send(ctx, sms)
	})
	if err != nil {
		return "", breakerError("sms_gateway", err)
	}
	return sid, nil
}

// State reports the current circuit state.
func (b *BreakerGateway) State() gobreaker.State {
	return b.cb.State()
}
