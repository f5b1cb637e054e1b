package middleware

import (
	"time"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestIDKey is the locals key holding the per-request ULID.
const RequestIDKey = "request_id"

// RequestLogger logs every HTTP request with a ULID correlation id.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := util.NewULID()
		c.Locals(RequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}
