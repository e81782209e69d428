package handlers

import (
	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/jjenkins/bulletin/internal/service"
	"github.com/jjenkins/bulletin/internal/templates"
)

// homeCourseLimit is how many courses the home page lists
const homeCourseLimit = 100

func HomeHandler(coll service.CourseReader, logger *zap.Logger) fiber.Handler {
	metricsService := service.NewMetricsService(coll)
	parser := service.NewParser()

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		data := templates.HomeData{}

		// A broken store still renders the page, just empty
		metrics, err := metricsService.Calculate(ctx)
		if err != nil {
			logger.Error("error calculating course metrics", zap.Error(err))
		} else {
			data.Metrics = *metrics
			data.HasData = metrics.TotalCourses > 0
		}

		if data.HasData {
			records, err := coll.Find(ctx, homeCourseLimit)
			if err != nil {
				logger.Error("error loading courses", zap.Error(err))
			} else {
				data.Courses = parser.ParseAll(records)
			}
		}

		page := templates.Home(data)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
