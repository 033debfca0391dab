package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AccessLogGin writes one structured line per request.
func AccessLogGin(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		requestID, _ := c.Get(RequestIDKey)
		status := c.Writer.Status()
		event := levelFor(log, status).
			Str("request_id", toString(requestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP())
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			event = event.Str("errors", errs)
		}
		event.Msg("request")
	}
}

// AccessLogFiber writes one structured line per request.
func AccessLogFiber(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromFiberError(err, status)
		}
		event := levelFor(log, status).
			Str("request_id", requestIDFromFiber(c)).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("request")
		return err
	}
}

func levelFor(log zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
