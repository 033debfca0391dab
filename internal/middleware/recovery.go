package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/model"
)

// RecoveryGin turns a handler panic into a logged 500.
func RecoveryGin(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestID, _ := c.Get(RequestIDKey)
		log.Error().
			Str("request_id", toString(requestID)).
			Interface("panic", recovered).
			Bytes("stack", debug.Stack()).
			Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("Internal Server Error"))
	})
}

// RecoveryFiber is fiber's recover middleware logging through zerolog.
// The recovered panic reaches the app's error handler as a 500.
func RecoveryFiber(log zerolog.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, recovered any) {
			log.Error().
				Str("request_id", requestIDFromFiber(c)).
				Interface("panic", recovered).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
		},
	})
}

func errorBody(msg string) model.ErrorResponse {
	return model.ErrorResponse{Error: true, Message: msg}
}
