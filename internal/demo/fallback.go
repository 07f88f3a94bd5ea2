// Package demo supplies fixed sample records shown to users with no history
// when the service runs as a public demo.
package demo

import (
	"fmt"
	"time"

	"github.com/kursadbilgin/notify-api/internal/domain"
)

// Fallback substitutes synthetic records for an empty result.
type Fallback[T any] struct {
	enabled bool
	build   func(userID int64, now time.Time) []T
	now     func() time.Time
}

func newFallback[T any](enabled bool, build func(int64, time.Time) []T) *Fallback[T] {
	return &Fallback[T]{enabled: enabled, build: build, now: time.Now}
}

// Enabled reports whether demo substitution is active.
func (f *Fallback[T]) Enabled() bool {
	return f != nil && f.enabled
}

// Resolve returns real unless it is empty and the fallback is enabled, in
// which case the synthetic records for userID are returned instead. The two
// sets are never merged.
func (f *Fallback[T]) Resolve(userID int64, real []T) []T {
	if len(real) > 0 || !f.Enabled() {
		return real
	}
	return f.build(userID, f.now().UTC())
}

func Emails(enabled bool) *Fallback[domain.EmailNotification] {
	return newFallback(enabled, func(userID int64, now time.Time) []domain.EmailNotification {
		return []domain.EmailNotification{
			{
				ID:        "sample-1",
				UserID:    userID,
				EmailTo:   "user@example.com",
				Subject:   "Welcome to Notifications",
				Body:      "This is a sample email notification",
				Sent:      true,
				CreatedAt: now,
			},
			{
				ID:        "sample-2",
				UserID:    userID,
				EmailTo:   "user@example.com",
				Subject:   "Your Account Update",
				Body:      "This is another sample email notification",
				Sent:      true,
				CreatedAt: now,
			},
		}
	})
}

func SMS(enabled bool) *Fallback[domain.SMSNotification] {
	return newFallback(enabled, func(userID int64, now time.Time) []domain.SMSNotification {
		sid1, sid2 := "sample-sid-1", "sample-sid-2"
		return []domain.SMSNotification{
			{
				ID:        "sample-1",
				UserID:    userID,
				To:        "+1234567890",
				Body:      "This is a sample SMS notification",
				SID:       &sid1,
				CreatedAt: now,
			},
			{
				ID:        "sample-2",
				UserID:    userID,
				To:        "+1234567890",
				Body:      "Another sample SMS notification",
				SID:       &sid2,
				CreatedAt: now,
			},
		}
	})
}

func InApp(enabled bool) *Fallback[domain.InAppNotification] {
	return newFallback(enabled, func(userID int64, now time.Time) []domain.InAppNotification {
		return []domain.InAppNotification{
			{
				ID:               fmt.Sprintf("%d-sample-1", userID),
				UserID:           userID,
				Title:            "Welcome to the Notification System",
				Message:          "This is a sample in-app notification. You can create more by using the form.",
				NotificationType: domain.InAppTypeInfo,
				CreatedAt:        now,
			},
			{
				ID:               fmt.Sprintf("%d-sample-2", userID),
				UserID:           userID,
				Title:            "Tip: Try Different Notification Types",
				Message:          "You can create notifications with different types: info, success, warning, and error.",
				NotificationType: domain.InAppTypeSuccess,
				CreatedAt:        now,
			},
			{
				ID:               fmt.Sprintf("%d-sample-3", userID),
				UserID:           userID,
				Title:            "Check Out the History Tab",
				Message:          "View all your notifications in the History tab and manage their status.",
				NotificationType: domain.InAppTypeWarning,
				Read:             true,
				CreatedAt:        now,
			},
		}
	})
}
