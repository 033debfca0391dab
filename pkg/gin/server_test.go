package gin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journal/internal/app/apptest"
	"github.com/aebalz/mindful-journal/internal/model"
)

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestGinServer_JournalFlow(t *testing.T) {
	h := apptest.New(t, nil)
	router := NewGinServer(h.Config, h.App.Handlers, zerolog.Nop())
	anon := &client{t: t, router: router}

	w := anon.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = anon.do(http.MethodPost, "/users", map[string]string{"email": "Ana@Example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ana@example.com", decode[model.User](t, w).Email)
	assert.NotContains(t, w.Body.String(), "correct-horse")

	w = anon.do(http.MethodPost, "/users", map[string]string{"email": "ana@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusConflict, w.Code)

	form := url.Values{"username": {"ana@example.com"}, "password": {"correct-horse"}}
	req := httptest.NewRequest(http.MethodPost, "/users/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[model.Token](t, w)
	assert.Equal(t, "bearer", token.TokenType)

	w = anon.do(http.MethodGet, "/journal", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	me := &client{t: t, router: router, token: token.AccessToken}

	w = me.do(http.MethodPost, "/journal", map[string]string{"mood": "Happy", "content": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, decode[model.ErrorResponse](t, w).Error)

	w = me.do(http.MethodPost, "/journal", map[string]string{"mood": "Happy", "content": "Dinner with friends and live music tonight."})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	created := decode[model.JournalEntryResponse](t, w)
	assert.Equal(t, model.AnalysisStatusPending, created.Status)

	h.Wait(t)

	w = me.do(http.MethodGet, fmt.Sprintf("/journal/%d/status", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[model.EntryStatus](t, w)
	assert.Equal(t, model.AnalysisStatusComplete, status.Status)
	assert.Equal(t, []string{"friends", "music"}, status.KeyThemes)

	w = me.do(http.MethodGet, "/articles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Article](t, w), 6)

	w = me.do(http.MethodGet, "/journal/prompt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, apptest.PromptReply, decode[model.JournalPrompt](t, w).Prompt)

	w = me.do(http.MethodGet, "/journal/insights?days_mood=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	insights := decode[model.HistoricalInsights](t, w)
	assert.Len(t, insights.MoodHistory, 1)
	assert.Len(t, insights.ThemeCloud, 2)

	w = me.do(http.MethodGet, "/journal/insights?days_mood=365", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = me.do(http.MethodPost, "/chat/query", map[string]string{"message": "I had a good day"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, apptest.ChatReply, decode[model.ChatResponse](t, w).Response)

	w = me.do(http.MethodDelete, fmt.Sprintf("/journal/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = me.do(http.MethodGet, fmt.Sprintf("/journal/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = me.do(http.MethodGet, "/journal/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// articles outlive their source entry
	w = me.do(http.MethodGet, "/articles", nil)
	articles := decode[[]model.Article](t, w)
	require.Len(t, articles, 6)
	assert.Nil(t, articles[0].SourceJournalEntryID)

	w = me.do(http.MethodGet, "/users/me/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[model.UserDataExport](t, w).Articles, 6)

	w = me.do(http.MethodDelete, "/users/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = me.do(http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGinServer_EntriesAreScopedToOwner(t *testing.T) {
	h := apptest.New(t, nil)
	router := NewGinServer(h.Config, h.App.Handlers, zerolog.Nop())
	_, aliceToken := h.Register(t, "alice@example.com")
	_, bobToken := h.Register(t, "bob@example.com")
	alice := &client{t: t, router: router, token: aliceToken}
	bob := &client{t: t, router: router, token: bobToken}

	w := alice.do(http.MethodPost, "/journal", map[string]string{"mood": "Calm", "content": "A quiet morning with tea."})
	require.Equal(t, http.StatusAccepted, w.Code)
	entry := decode[model.JournalEntryResponse](t, w)

	w = bob.do(http.MethodGet, fmt.Sprintf("/journal/%d", entry.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = bob.do(http.MethodDelete, fmt.Sprintf("/journal/%d", entry.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = bob.do(http.MethodGet, "/journal", nil)
	assert.Empty(t, decode[[]model.JournalEntry](t, w))
}

func TestGinServer_Operational(t *testing.T) {
	h := apptest.New(t, nil)
	router := NewGinServer(h.Config, h.App.Handlers, zerolog.Nop())
	anon := &client{t: t, router: router}

	w := anon.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, decode[model.ErrorResponse](t, w).Error)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = anon.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{code="404",method="GET",path="unmatched"}`)
}
