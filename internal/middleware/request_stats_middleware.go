package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
)

// RequestStats records per-endpoint latency and status counts into the
// shared metrics. Routes aggregate by registered path so /analyses/:id
// stays one bucket regardless of the id.
func RequestStats(metrics *monitoring.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Method() + " " + c.Route().Path
		metrics.RecordRequest(route, status, time.Since(start).Milliseconds())
		return err
	}
}
