package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger is the readiness probe of a backing store. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ServiceInfo is the deployment metadata reported by the info endpoints.
type ServiceInfo struct {
	Environment string
	Version     string
	FrontendURL string
	DemoMode    bool
}

// RegisterHealthRoutes mounts the info and probe endpoints. db may be nil when
// records are kept in memory.
func RegisterHealthRoutes(app fiber.Router, info ServiceInfo, db Pinger) {
	app.Get("/", RootHandler(info))
	app.Get("/health", HealthHandler(info))
	app.Get("/api/environment", EnvironmentHandler(info))
	app.Get("/livez", LivezHandler())
	app.Get("/readyz", ReadyzHandler(db))
}

func RootHandler(info ServiceInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":     "Notification API is running",
			"environment": info.Environment,
			"version":     info.Version,
		})
	}
}

func HealthHandler(info ServiceInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":      "healthy",
			"version":     info.Version,
			"environment": info.Environment,
		})
	}
}

func EnvironmentHandler(info ServiceInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"environment":  info.Environment,
			"frontend_url": info.FrontendURL,
			"demo_mode":    info.DemoMode,
		})
	}
}

func LivezHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

func ReadyzHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"status": "ready",
				"checks": fiber.Map{"store": "memory"},
			})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
		defer cancel()

		pgStatus := "ok"
		status := "ready"
		statusCode := fiber.StatusOK
		if err := db.PingContext(ctx); err != nil {
			pgStatus = "down"
			status = "not_ready"
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"checks": fiber.Map{
				"postgres": pgStatus,
			},
		})
	}
}
