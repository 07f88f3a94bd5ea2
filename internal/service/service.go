package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"go.uber.org/zap"
)

// base carries the collaborators every channel service shares.
type base struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
	newID   func() string
}

func newBase(logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetMetrics attaches Prometheus collectors. A nil value disables metrics.
func (b *base) SetMetrics(metrics *observability.Metrics) {
	b.metrics = metrics
}

func (b *base) timestamp() time.Time {
	return b.now().UTC()
}

func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
