package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/kursadbilgin/notify-api/internal/domain"
)

type samplePayload struct {
	UserID *int64 `json:"user_id" validate:"required"`
	Email  string `json:"email_to" validate:"required,email"`
	Kind   string `json:"notification_type" validate:"inapp_type"`
	Note   string `json:"note" validate:"max=5"`
}

func int64Ptr(v int64) *int64 { return &v }

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    samplePayload
		wantFields []string
	}{
		{
			name:    "valid payload",
			payload: samplePayload{UserID: int64Ptr(1), Email: "a@example.com", Kind: "success"},
		},
		{
			name:    "empty type is allowed",
			payload: samplePayload{UserID: int64Ptr(0), Email: "a@example.com"},
		},
		{
			name:       "missing user and bad email",
			payload:    samplePayload{Email: "nope"},
			wantFields: []string{"user_id", "email_to"},
		},
		{
			name:       "unknown in-app type",
			payload:    samplePayload{UserID: int64Ptr(1), Email: "a@example.com", Kind: "urgent"},
			wantFields: []string{"notification_type"},
		},
		{
			name:       "too long note",
			payload:    samplePayload{UserID: int64Ptr(1), Email: "a@example.com", Note: "abcdefg"},
			wantFields: []string{"note"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.payload)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("ValidateStruct() error = %v, want ErrValidation", err)
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateStruct() error type = %T, want *Error", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("field errors = %+v, want fields %v", verr.Fields, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if verr.Fields[i].Field != field {
					t.Fatalf("field[%d] = %q, want %q", i, verr.Fields[i].Field, field)
				}
				if !strings.Contains(verr.Error(), field) {
					t.Fatalf("Error() = %q, want mention of %q", verr.Error(), field)
				}
			}
		})
	}
}
