package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkConfig holds Postmark API credentials and the sender address.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	From         string
	// BaseURL overrides the Postmark API root. Empty uses the library default.
	BaseURL string
}

// PostmarkMailer delivers HTML mail through the Postmark transactional API.
type PostmarkMailer struct {
	client *postmark.Client
	from   string
}

func NewPostmarkMailer(cfg PostmarkConfig) (*PostmarkMailer, error) {
	if strings.TrimSpace(cfg.ServerToken) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("postmark sender address is required")
	}

	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); baseURL != "" {
		client.BaseURL = baseURL
	}

	return &PostmarkMailer{
		client: client,
		from:   cfg.From,
	}, nil
}

func (m *PostmarkMailer) Send(ctx context.Context, msg Mail) error {
	if m == nil || m.client == nil {
		return ErrNotConfigured
	}

	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.from,
		To:       msg.To,
		Subject:  msg.Subject,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return &ProviderError{
			Message:   "postmark request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}
	if resp.ErrorCode > 0 {
		return &ProviderError{
			Message: fmt.Sprintf("postmark error %d: %s", resp.ErrorCode, resp.Message),
		}
	}
	return nil
}
