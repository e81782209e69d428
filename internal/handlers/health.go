package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jjenkins/bulletin/internal/service"
)

// HealthHandler reports whether the course store answers a count
func HealthHandler(coll service.CourseReader, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := coll.Count(c.UserContext())
		if err != nil {
			logger.Warn("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "courses": total})
	}
}
