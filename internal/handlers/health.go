package handlers

import (
	"bux/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness of the service and its stores.
func Health(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
	}

	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["postgres"] = "unreachable"
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = "unreachable"
		}
	}

	code := fiber.StatusOK
	if status["status"] != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(status)
}
