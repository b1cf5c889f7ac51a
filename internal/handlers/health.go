package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether Redis is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	redis    HealthChecker
}

// NewHealthHandler creates a health handler. redis may be nil when the
// server runs without it.
func NewHealthHandler(database Pinger, redis HealthChecker) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

// Check handles GET /health. The database is required; Redis is optional.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{"database": "connected", "redis": "disabled"}

	if err := h.database.Ping(ctx); err != nil {
		status = fiber.StatusServiceUnavailable
		services["database"] = "unreachable"
	}
	if h.redis != nil {
		services["redis"] = "connected"
		if err := h.redis.HealthCheck(ctx); err != nil {
			services["redis"] = "unreachable"
		}
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   overall,
		"services": services,
	})
}
