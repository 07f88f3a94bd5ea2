package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTwilioTimeout = 10 * time.Second
	DefaultTwilioBaseURL = "https://api.twilio.com"
)

// TwilioConfig holds Twilio account credentials and the sender number.
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
	BaseURL     string
}

// Configured reports whether every credential needed to send is present.
func (c TwilioConfig) Configured() bool {
	return strings.TrimSpace(c.AccountSID) != "" &&
		strings.TrimSpace(c.AuthToken) != "" &&
		strings.TrimSpace(c.PhoneNumber) != ""
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// TwilioGateway sends SMS through the Twilio Messages REST API.
type TwilioGateway struct {
	client *resty.Client
	config TwilioConfig
}

func NewTwilioGateway(cfg TwilioConfig) (*TwilioGateway, error) {
	client := resty.New()
	client.SetTimeout(defaultTwilioTimeout)
	client.SetRetryCount(0)

	return NewTwilioGatewayWithClient(cfg, client)
}

func NewTwilioGatewayWithClient(cfg TwilioConfig, client *resty.Client) (*TwilioGateway, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTwilioBaseURL
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid twilio base url: %w", err)
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultTwilioTimeout)
	}
	client.SetRetryCount(0)

	return &TwilioGateway{
		client: client,
		config: cfg,
	}, nil
}

// Sender returns the configured sender number.
func (g *TwilioGateway) Sender() string {
	if g == nil {
		return ""
	}
	return g.config.PhoneNumber
}

func (g *TwilioGateway) Send(ctx context.Context, sms SMS) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("twilio gateway is not initialized")
	}

	from := strings.TrimSpace(sms.From)
	if from == "" {
		from = g.config.PhoneNumber
	}

	var result twilioMessage
	var apiErr twilioError
	response, err := g.client.R().
		SetContext(ctx).
		SetBasicAuth(g.config.AccountSID, g.config.AuthToken).
		SetFormData(map[string]string{
			"To":   sms.To,
			"From": from,
			"Body": sms.Body,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(g.messagesURL())
	if err != nil {
		return "", &ProviderError{
			Message:   "twilio request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}
	if response == nil {
		return "", &ProviderError{
			Message:   "twilio returned empty response",
			Transient: true,
		}
	}

	statusCode := response.StatusCode()
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		if strings.TrimSpace(result.SID) == "" {
			return "", &ProviderError{
				StatusCode: statusCode,
				Message:    "twilio response missing message sid",
			}
		}
		return result.SID, nil
	}

	return "", &ProviderError{
		StatusCode: statusCode,
		Message:    twilioErrorMessage(statusCode, apiErr, strings.TrimSpace(response.String())),
		Transient:  isTransientHTTPStatus(statusCode),
	}
}

func (g *TwilioGateway) messagesURL() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", g.config.BaseURL, url.PathEscape(g.config.AccountSID))
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}

func twilioErrorMessage(statusCode int, apiErr twilioError, body string) string {
	base := fmt.Sprintf("twilio returned status %d", statusCode)
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		if apiErr.Code > 0 {
			return fmt.Sprintf("%s: code %d: %s", base, apiErr.Code, msg)
		}
		return fmt.Sprintf("%s: %s", base, msg)
	}
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}
