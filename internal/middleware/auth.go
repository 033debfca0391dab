package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

// UserKey is where the authenticated user is stored on the request context.
const UserKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

const (
	msgNotAuthenticated = "Could not validate credentials"
	msgInactiveUser     = "Inactive user"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authFailure maps an authentication error to a status and client message.
func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgNotAuthenticated
	case errors.Is(err, service.ErrInactiveUser):
		return http.StatusBadRequest, msgInactiveUser
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// AuthGin requires a valid bearer token and stores the user under UserKey.
func AuthGin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Not authenticated"))
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status, msg := authFailure(err)
			if status == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
			}
			if status == http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(status, errorBody(msg))
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

// AuthFiber is the fiber counterpart of AuthGin.
func AuthFiber(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			status, msg := authFailure(err)
			if status == http.StatusUnauthorized {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			if status == http.StatusInternalServerError {
				return err
			}
			return fiber.NewError(status, msg)
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// UserFromGin returns the user stored by AuthGin.
func UserFromGin(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// UserFromFiber returns the user stored by AuthFiber.
func UserFromFiber(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals(UserKey).(*model.User)
	return user, ok && user != nil
}
