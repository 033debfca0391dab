package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

const msgInternal = "Internal Server Error"

// errBadRequest marks request parsing failures (malformed JSON, bad path or query values).
var errBadRequest = errors.New("bad request")

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }
func (e badRequest) Unwrap() error { return errBadRequest }

func newBadRequest(msg string) error { return badRequest{msg: msg} }

// statusFor maps service errors to an HTTP status and client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound, "Journal entry not found"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, service.ErrInactiveUser):
		return http.StatusBadRequest, "Inactive user"
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func errorBody(msg string) model.ErrorResponse {
	return model.ErrorResponse{Error: true, Message: msg}
}

// respondErrorGin writes err as JSON. Unexpected errors are attached to the
// context so the access log records them.
func respondErrorGin(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, errorBody(msg))
}

// fiberError converts err for fiber's error handler. Unexpected errors pass
// through unchanged and become a 500 there.
func fiberError(c *fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		return err
	}
	if status == http.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return fiber.NewError(status, msg)
}

// ErrorHandlerFiber renders every fiber error in the shared JSON error shape.
func ErrorHandlerFiber(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgInternal

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(code).JSON(errorBody(message))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, newBadRequest("invalid entry id")
	}
	return uint(id), nil
}

// parseIntQuery parses an optional integer query value.
func parseIntQuery(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newBadRequest("invalid " + name + " parameter")
	}
	return v, nil
}

func parsePage(skipRaw, limitRaw string) (int, int, error) {
	skip, err := parseIntQuery("skip", skipRaw, 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err := parseIntQuery("limit", limitRaw, service.DefaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	skip, limit = service.NormalizePage(skip, limit)
	return skip, limit, nil
}

// NotFoundGin answers unmatched routes in the JSON error shape.
func NotFoundGin(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody("Not Found"))
}
