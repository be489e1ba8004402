package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"socialfeed/internal/logger"
)

const (
	HeaderRequestID = "X-Request-Id"
	localRequestID  = "request_id"
)

// RequestID takes the request id from the X-Request-Id header or generates
// one, echoes it back and stores a child logger carrying it in the request
// context. Each request is logged once it completes.
func RequestID(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(localRequestID, rid)
		c.Set(HeaderRequestID, rid)

		reqLog := base.With().Str("request_id", rid).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusOf(err)
		}
		ev := reqLog.Info()
		if status >= fiber.StatusBadRequest || err != nil {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// RequestIDFromLocals returns the id assigned by RequestID, if any.
func RequestIDFromLocals(c *fiber.Ctx) string {
	rid, _ := c.Locals(localRequestID).(string)
	return rid
}
