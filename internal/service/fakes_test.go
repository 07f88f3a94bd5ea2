package service

import (
	"context"

	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/provider"
	"github.com/kursadbilgin/notify-api/internal/repository"
)

type fakeMailer struct {
	sendFn func(ctx context.Context, mail provider.Mail) error
	sent   []provider.Mail
}

func (f *fakeMailer) Send(ctx context.Context, mail provider.Mail) error {
	f.sent = append(f.sent, mail)
	if f.sendFn != nil {
		return f.sendFn(ctx, mail)
	}
	return nil
}

type fakeGateway struct {
	sendFn func(ctx context.Context, sms provider.SMS) (string, error)
	sent   []provider.SMS
}

func (f *fakeGateway) Send(ctx context.Context, sms provider.SMS) (string, error) {
	f.sent = append(f.sent, sms)
	if f.sendFn != nil {
		return f.sendFn(ctx, sms)
	}
	return "SM-fake", nil
}

// failingStore wraps a memory store and lets tests inject errors per call.
type failingStore[T repository.Record] struct {
	*repository.MemoryStore[T]
	appendFn     func(ctx context.Context, record T) error
	findByUserFn func(ctx context.Context, userID int64) ([]T, error)
}

func newFailingStore[T repository.Record]() *failingStore[T] {
	return &failingStore[T]{MemoryStore: repository.NewMemoryStore[T]()}
}

func (s *failingStore[T]) Append(ctx context.Context, record T) error {
	if s.appendFn != nil {
		return s.appendFn(ctx, record)
	}
	return s.MemoryStore.Append(ctx, record)
}

func (s *failingStore[T]) FindByUser(ctx context.Context, userID int64) ([]T, error) {
	if s.findByUserFn != nil {
		return s.findByUserFn(ctx, userID)
	}
	return s.MemoryStore.FindByUser(ctx, userID)
}

var _ repository.LogStore[domain.EmailNotification] = (*failingStore[domain.EmailNotification])(nil)

func int64Ptr(v int64) *int64 { return &v }
