package fiber

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journal/internal/app/apptest"
	"github.com/aebalz/mindful-journal/internal/model"
)

func send(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestFiberServer_JournalFlow(t *testing.T) {
	h := apptest.New(t, nil)
	app := NewFiberServer(h.Config, h.App.Handlers, zerolog.Nop())

	status, _ := send(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := send(t, app, http.MethodPost, "/users", "", map[string]string{"email": "kai@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, status, string(body))

	form := url.Values{"username": {"kai@example.com"}, "password": {"wrong-password"}}
	req := httptest.NewRequest(http.MethodPost, "/users/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	form.Set("password", "correct-horse")
	req = httptest.NewRequest(http.MethodPost, "/users/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token model.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))

	status, _ = send(t, app, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = send(t, app, http.MethodPost, "/journal", token.AccessToken, map[string]string{"mood": "Happy", "content": "Dinner with friends and live music tonight."})
	require.Equal(t, http.StatusAccepted, status, string(body))
	var created model.JournalEntryResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, model.AnalysisStatusPending, created.Status)

	h.Wait(t)

	status, body = send(t, app, http.MethodGet, fmt.Sprintf("/journal/%d/status", created.ID), token.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var entryStatus model.EntryStatus
	require.NoError(t, json.Unmarshal(body, &entryStatus))
	assert.Equal(t, model.AnalysisStatusComplete, entryStatus.Status)

	status, body = send(t, app, http.MethodGet, "/articles?limit=4", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var articles []model.Article
	require.NoError(t, json.Unmarshal(body, &articles))
	assert.Len(t, articles, 4)

	status, body = send(t, app, http.MethodGet, "/journal/prompt", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), apptest.PromptReply)

	status, _ = send(t, app, http.MethodPost, "/chat/query", token.AccessToken, map[string]string{"message": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = send(t, app, http.MethodGet, "/journal/999", token.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = send(t, app, http.MethodDelete, "/users/me", token.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted model.UserDeleteResponse
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, int64(1), deleted.DeletedEntryCount)
}

func TestFiberServer_ErrorShape(t *testing.T) {
	h := apptest.New(t, nil)
	app := NewFiberServer(h.Config, h.App.Handlers, zerolog.Nop())

	status, body := send(t, app, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	var errBody model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.True(t, errBody.Error)

	status, body = send(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "http_request_duration_seconds")
}
