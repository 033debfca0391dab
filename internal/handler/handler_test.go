package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/middleware"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{newBadRequest("invalid entry id"), http.StatusBadRequest},
		{fmt.Errorf("%w: content is required", service.ErrValidation), http.StatusUnprocessableEntity},
		{service.ErrEntryNotFound, http.StatusNotFound},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrEmailTaken, http.StatusConflict},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrInactiveUser, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, msg := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.NotEmpty(t, msg)
	}

	_, msg := statusFor(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, msgInternal, msg)
}

func TestParsing(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(raw)
		assert.ErrorIs(t, err, errBadRequest, raw)
	}

	skip, limit, err := parsePage("", "")
	require.NoError(t, err)
	assert.Equal(t, 0, skip)
	assert.Equal(t, service.DefaultPageLimit, limit)

	skip, limit, err = parsePage("5", "1000")
	require.NoError(t, err)
	assert.Equal(t, 5, skip)
	assert.Equal(t, service.MaxPageLimit, limit)

	_, _, err = parsePage("x", "")
	assert.ErrorIs(t, err, errBadRequest)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestHealthGin(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHealthHandler(db, nil)
	router := gin.New()
	router.GET("/health", h.CheckHealthGin)

	mock.ExpectPing()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body HealthCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.DatabaseStatus)
	assert.Equal(t, "disabled", body.CacheStatus)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthFiber(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHealthHandler(db, nil)
	app := fiber.New()
	app.Get("/health", h.CheckHealthFiber)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

type stubChat struct{ got string }

func (s *stubChat) Respond(_ context.Context, message string) model.ChatResponse {
	s.got = message
	return model.ChatResponse{Response: "echo: " + message}
}

func TestChatGin(t *testing.T) {
	chat := &stubChat{}
	h := NewChatHandler(chat)
	router := gin.New()
	router.POST("/chat/query", h.QueryGin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/query", strings.NewReader(`{"message":"hello"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", chat.got)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/query", strings.NewReader(`{"message":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	long := fmt.Sprintf(`{"message":%q}`, strings.Repeat("a", maxChatMessage+1))
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat/query", strings.NewReader(long)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

type stubArticles struct {
	skip, limit int
	userID      uuid.UUID
}

func (s *stubArticles) ListArticles(_ context.Context, userID uuid.UUID, skip, limit int) ([]model.Article, error) {
	s.userID, s.skip, s.limit = userID, skip, limit
	return []model.Article{}, nil
}

func TestArticlesFiber_UsesCallerAndPage(t *testing.T) {
	stub := &stubArticles{}
	h := NewArticleHandler(stub)
	user := &model.User{ID: uuid.New()}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerFiber})
	app.Get("/articles", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserKey, user)
		return c.Next()
	}, h.ListArticlesFiber)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/articles?skip=3&limit=7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user.ID, stub.userID)
	assert.Equal(t, 3, stub.skip)
	assert.Equal(t, 7, stub.limit)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/articles?limit=ten", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid limit parameter", body.Message)
}
