package transport

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/kursadbilgin/notify-api/internal/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantLevel  zapcore.Level
	}{
		{
			name:       "fiber error keeps status",
			err:        fiber.NewError(fiber.StatusNotFound, "notification not found"),
			wantStatus: fiber.StatusNotFound,
			wantBody:   `{"detail":"notification not found"}`,
			wantLevel:  zapcore.WarnLevel,
		},
		{
			name:       "plain error is internal",
			err:        errors.New("store unavailable"),
			wantStatus: fiber.StatusInternalServerError,
			wantBody:   `{"detail":"store unavailable"}`,
			wantLevel:  zapcore.ErrorLevel,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
			app.Get("/fail", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
			if string(body) != tc.wantBody {
				t.Fatalf("body = %s, want %s", body, tc.wantBody)
			}

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("log entries = %d, want 1", len(entries))
			}
			if entries[0].Level != tc.wantLevel {
				t.Fatalf("log level = %s, want %s", entries[0].Level, tc.wantLevel)
			}
			if got := entries[0].ContextMap()["path"]; got != "/fail" {
				t.Fatalf("logged path = %v, want /fail", got)
			}
		})
	}
}

func TestRequestContextPropagatesRequestID(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestContext())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = observability.RequestIDFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-abc")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if seen != "req-abc" {
		t.Fatalf("request id = %q, want req-abc", seen)
	}
}

func TestCORSConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		origins         []string
		wantOrigins     string
		wantCredentials bool
	}{
		{
			name:            "explicit origins allow credentials",
			origins:         []string{"https://app.example.com/", "http://localhost:3000", "", "http://localhost:3000"},
			wantOrigins:     "https://app.example.com,http://localhost:3000",
			wantCredentials: true,
		},
		{
			name:            "wildcard disables credentials",
			origins:         []string{"https://app.example.com", "*"},
			wantOrigins:     "*",
			wantCredentials: false,
		},
		{
			name:            "no origins",
			origins:         nil,
			wantOrigins:     "*",
			wantCredentials: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := CORSConfig(tc.origins)
			if cfg.AllowOrigins != tc.wantOrigins {
				t.Fatalf("AllowOrigins = %q, want %q", cfg.AllowOrigins, tc.wantOrigins)
			}
			if cfg.AllowCredentials != tc.wantCredentials {
				t.Fatalf("AllowCredentials = %v, want %v", cfg.AllowCredentials, tc.wantCredentials)
			}
			if !strings.Contains(cfg.AllowMethods, "DELETE") {
				t.Fatalf("AllowMethods = %q, want DELETE included", cfg.AllowMethods)
			}
		})
	}
}

func TestCORSConfigPreflight(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(cors.New(CORSConfig([]string{"https://app.example.com"})))
	app.Put("/inapp/:id/mark-read", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/inapp/1/mark-read", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPut)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "https://app.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowCredentials); got != "true" {
		t.Fatalf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}
