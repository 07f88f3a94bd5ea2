package domain

import (
	"errors"
	"testing"
)

func TestParseInAppType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    InAppType
		wantErr bool
	}{
		{name: "empty defaults to info", input: "", want: InAppTypeInfo},
		{name: "valid lowercase", input: "warning", want: InAppTypeWarning},
		{name: "valid mixed case with spaces", input: " Success ", want: InAppTypeSuccess},
		{name: "error type", input: "error", want: InAppTypeError},
		{name: "invalid", input: "critical", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInAppType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("ParseInAppType() error = %v, want ErrValidation", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseInAppType() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseInAppType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChannelIsValid(t *testing.T) {
	t.Parallel()

	for _, ch := range []Channel{ChannelEmail, ChannelSMS, ChannelInApp} {
		if !ch.IsValid() {
			t.Fatalf("%s should be valid", ch)
		}
	}
	if Channel("push").IsValid() {
		t.Fatal("push should not be a valid channel")
	}
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	email := EmailNotification{ID: "e-1", UserID: 3}
	if email.RecordID() != "e-1" || email.OwnerID() != 3 {
		t.Fatalf("email accessors = (%s, %d), want (e-1, 3)", email.RecordID(), email.OwnerID())
	}

	sms := SMSNotification{ID: "s-1", UserID: 4}
	if sms.RecordID() != "s-1" || sms.OwnerID() != 4 {
		t.Fatalf("sms accessors = (%s, %d), want (s-1, 4)", sms.RecordID(), sms.OwnerID())
	}

	inapp := InAppNotification{ID: "i-1", UserID: 5}
	if inapp.RecordID() != "i-1" || inapp.OwnerID() != 5 {
		t.Fatalf("inapp accessors = (%s, %d), want (i-1, 5)", inapp.RecordID(), inapp.OwnerID())
	}
}
