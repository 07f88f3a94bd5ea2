package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"

	MailProviderSMTP     = "smtp"
	MailProviderPostmark = "postmark"
)

var dotenvOnce sync.Once

type Config struct {
	Port        int    `env:"PORT,default=8000"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	Environment string `env:"APP_ENV,default=development"`
	Version     string `env:"APP_VERSION,default=1.0.0"`

	DemoMode bool   `env:"DEMO_MODE,default=false"`
	Vercel   string `env:"VERCEL"`

	FrontendURL      string `env:"FRONTEND_URL"`
	DevelopmentURL   string `env:"DEVELOPMENT_URL"`
	CORSExtraOrigins string `env:"CORS_EXTRA_ORIGINS"`

	StoreBackend string `env:"STORE_BACKEND,default=memory"`
	DatabaseDSN  string `env:"DATABASE_DSN"`

	MailProvider string `env:"MAIL_PROVIDER,default=smtp"`
	MailServer   string `env:"MAIL_SERVER"`
	MailPort     int    `env:"MAIL_PORT,default=587"`
	MailUsername string `env:"MAIL_USERNAME"`
	MailPassword string `env:"MAIL_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM,default=test@example.com"`
	MailStartTLS bool   `env:"MAIL_STARTTLS,default=true"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`
	TwilioBaseURL     string `env:"TWILIO_BASE_URL,default=https://api.twilio.com"`

	BreakerFailureThreshold int `env:"BREAKER_FAILURE_THRESHOLD,default=5"`
	BreakerOpenSeconds      int `env:"BREAKER_OPEN_SECONDS,default=30"`
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory. Variables already set win over .env.
func Load() (*Config, error) {
	dotenvOnce.Do(func() {
		// A missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	c.MailProvider = strings.ToLower(strings.TrimSpace(c.MailProvider))
	c.Environment = strings.TrimSpace(c.Environment)
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return fmt.Errorf("DATABASE_DSN is required when STORE_BACKEND=%s", StoreBackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.MailProvider {
	case MailProviderSMTP, MailProviderPostmark:
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider)
	}

	if c.BreakerFailureThreshold <= 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
	}
	if c.BreakerOpenSeconds <= 0 {
		return fmt.Errorf("BREAKER_OPEN_SECONDS must be positive")
	}

	for _, origin := range c.CORSOrigins() {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid CORS origin %q", origin)
		}
	}

	return nil
}

// Demo reports whether empty listings are replaced by sample records.
func (c *Config) Demo() bool {
	return c.DemoMode || strings.TrimSpace(c.Vercel) == "1"
}

// IsDevelopment reports whether the process runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// CORSOrigins lists every configured browser origin.
func (c *Config) CORSOrigins() []string {
	candidates := []string{c.FrontendURL, c.DevelopmentURL}
	candidates = append(candidates, strings.Split(c.CORSExtraOrigins, ",")...)

	origins := make([]string, 0, len(candidates))
	for _, origin := range candidates {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}
