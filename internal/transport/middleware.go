package transport

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/kursadbilgin/notify-api/internal/observability"
)

const (
	corsAllowMethods  = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders  = "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-Request-ID"
	corsExposeHeaders = "Content-Type,X-Request-ID"
)

// RequestContext copies the id assigned by the requestid middleware into the
// request's user context, where services and the error handler read it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := requestID(c); id != "" {
			c.SetUserContext(observability.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	if value, ok := c.Locals("requestid").(string); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
}

// CORSConfig allows the given origins. Credentials are allowed only for an
// explicit origin list; a wildcard, or no origins at all, disables them.
func CORSConfig(origins []string) cors.Config {
	seen := make(map[string]struct{}, len(origins))
	cleaned := make([]string, 0, len(origins))
	wildcard := false

	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		if origin == "*" {
			wildcard = true
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		cleaned = append(cleaned, origin)
	}

	cfg := cors.Config{
		AllowMethods:  corsAllowMethods,
		AllowHeaders:  corsAllowHeaders,
		ExposeHeaders: corsExposeHeaders,
	}
	if wildcard || len(cleaned) == 0 {
		cfg.AllowOrigins = "*"
		return cfg
	}

	cfg.AllowOrigins = strings.Join(cleaned, ",")
	cfg.AllowCredentials = true
	return cfg
}
