package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDKey is the context key both frameworks store the request id under.
const RequestIDKey = "requestid"

// RequestIDHeader carries the id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestIDGin reuses an incoming X-Request-ID or generates a new one.
func RequestIDGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestIDFiber is fiber's requestid middleware with uuid ids.
func RequestIDFiber() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	})
}

func requestIDFromFiber(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
