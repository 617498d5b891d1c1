package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/transport-service/internal/pkg/metrics"
)

// Metrics учитывает запросы по шаблону маршрута, а не по фактическому пути
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Method(), route, statusOf(c, err), time.Since(start))
		return err
	}
}

// statusOf - код ответа с учётом ошибки, которую ещё обработает ErrorHandler
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
