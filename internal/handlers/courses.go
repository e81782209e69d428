package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jjenkins/bulletin/internal/model"
	"github.com/jjenkins/bulletin/internal/service"
)

const (
	defaultCourseLimit = 100
	maxCourseLimit     = 1000
)

// CoursesHandler returns stored course documents as a JSON array, oldest first.
// ?limit= picks how many, up to maxCourseLimit.
func CoursesHandler(coll service.CourseReader, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := defaultCourseLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
			}
			limit = min(n, maxCourseLimit)
		}

		records, err := coll.Find(c.UserContext(), int64(limit))
		if err != nil {
			logger.Error("error loading courses", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error loading courses"})
		}
		if records == nil {
			records = []model.CourseRecord{}
		}

		return c.JSON(records)
	}
}
