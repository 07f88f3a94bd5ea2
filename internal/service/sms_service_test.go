package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kursadbilgin/notify-api/internal/demo"
	"github.com/kursadbilgin/notify-api/internal/domain"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"github.com/kursadbilgin/notify-api/internal/provider"
	"github.com/kursadbilgin/notify-api/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSMSServiceSendWithoutGateway(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	store := repository.NewMemoryStore[domain.SMSNotification]()

	svc, err := NewSMSService(store, nil, "", demo.SMS(false), zap.New(core))
	if err != nil {
		t.Fatalf("NewSMSService() error = %v", err)
	}

	result, err := svc.Send(context.Background(), SendSMSInput{UserID: int64Ptr(3), To: "+15551112233", Body: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if result.Notification.SID != nil {
		t.Fatalf("SID = %q, want nil", *result.Notification.SID)
	}
	if result.Outcome != domain.OutcomeSkipped {
		t.Fatalf("Outcome = %s, want skipped", result.Outcome)
	}
	if store.Len() != 1 {
		t.Fatalf("store.Len() = %d, want 1", store.Len())
	}

	entries := logs.FilterMessage("sms gateway not configured, message not sent").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["to"]; got != "+15551112233" {
		t.Fatalf("logged to = %v, want recipient", got)
	}
}

func TestSMSServiceSendWithGateway(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore[domain.SMSNotification]()
	gateway := &fakeGateway{sendFn: func(context.Context, provider.SMS) (string, error) {
		return "SM123", nil
	}}
	metrics := observability.NewMetrics()

	svc, err := NewSMSService(store, gateway, "+15550000000", nil, nil)
	if err != nil {
		t.Fatalf("NewSMSService() error = %v", err)
	}
	svc.SetMetrics(metrics)

	result, err := svc.Send(context.Background(), SendSMSInput{UserID: int64Ptr(3), To: "+15551112233", Body: "hi"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if result.Notification.SID == nil || *result.Notification.SID != "SM123" {
		t.Fatalf("SID = %v, want SM123", result.Notification.SID)
	}
	if result.Outcome != domain.OutcomeSent {
		t.Fatalf("Outcome = %s, want sent", result.Outcome)
	}
	if len(gateway.sent) != 1 || gateway.sent[0].From != "+15550000000" || gateway.sent[0].To != "+15551112233" {
		t.Fatalf("gateway calls = %+v, want one call from the configured number", gateway.sent)
	}

	stored, err := store.FindByID(context.Background(), result.Notification.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.SID == nil || *stored.SID != "SM123" {
		t.Fatalf("stored SID = %v, want SM123", stored.SID)
	}
	if got := testutil.ToFloat64(metrics.NotificationsSent("sms")); got != 1 {
		t.Fatalf("notifications_sent_total = %v, want 1", got)
	}
}

func TestSMSServiceSendGatewayFailure(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore[domain.SMSNotification]()
	gateway := &fakeGateway{sendFn: func(context.Context, provider.SMS) (string, error) {
		return "", &provider.ProviderError{StatusCode: 400, Message: "invalid To number"}
	}}

	svc, err := NewSMSService(store, gateway, "", nil, nil)
	if err != nil {
		t.Fatalf("NewSMSService() error = %v", err)
	}

	_, err = svc.Send(context.Background(), SendSMSInput{UserID: int64Ptr(3), To: "bad", Body: "hi"})
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("Send() error = %v, want ErrDelivery", err)
	}

	var providerErr *provider.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("Send() error should wrap the provider error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", store.Len())
	}
}

func TestSMSServiceSendValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input SendSMSInput
	}{
		{name: "missing user", input: SendSMSInput{To: "+1", Body: "b"}},
		{name: "missing recipient", input: SendSMSInput{UserID: int64Ptr(1), Body: "b"}},
		{name: "missing body", input: SendSMSInput{UserID: int64Ptr(1), To: "+1"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gateway := &fakeGateway{}
			store := repository.NewMemoryStore[domain.SMSNotification]()
			svc, err := NewSMSService(store, gateway, "", nil, nil)
			if err != nil {
				t.Fatalf("NewSMSService() error = %v", err)
			}

			_, err = svc.Send(context.Background(), tc.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Send() error = %v, want ErrValidation", err)
			}
			if len(gateway.sent) != 0 || store.Len() != 0 {
				t.Fatal("nothing should be sent or stored on validation failure")
			}
		})
	}
}

func TestSMSServiceLogs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := NewSMSService(repository.NewMemoryStore[domain.SMSNotification](), nil, "", demo.SMS(true), nil)
	if err != nil {
		t.Fatalf("NewSMSService() error = %v", err)
	}

	samples, err := svc.Logs(ctx, 4)
	if err != nil {
		t.Fatalf("Logs() error = %v", err)
	}
	if len(samples) != 2 || samples[0].ID != "sample-1" {
		t.Fatalf("Logs() = %+v, want sample records", samples)
	}

	sent, err := svc.Send(ctx, SendSMSInput{UserID: int64Ptr(4), To: "+1", Body: "real"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	logs, err := svc.Logs(ctx, 4)
	if err != nil {
		t.Fatalf("Logs() error = %v", err)
	}
	if len(logs) != 1 || logs[0].ID != sent.Notification.ID {
		t.Fatalf("Logs() = %+v, want only the real record", logs)
	}
}

func TestSMSServiceLogsStoreFailure(t *testing.T) {
	t.Parallel()

	store := newFailingStore[domain.SMSNotification]()
	store.findByUserFn = func(context.Context, int64) ([]domain.SMSNotification, error) {
		return nil, errors.New("connection reset")
	}

	svc, err := NewSMSService(store, nil, "", demo.SMS(true), nil)
	if err != nil {
		t.Fatalf("NewSMSService() error = %v", err)
	}

	if _, err := svc.Logs(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}
