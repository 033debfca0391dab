// Package apptest builds a fully wired application on sqlite and a fake
// language model for HTTP-level tests.
package apptest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/app"
	"github.com/aebalz/mindful-journal/internal/cache"
	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/llm/llmtest"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
	"github.com/aebalz/mindful-journal/internal/testutil"
)

// AnalysisReply is what JournalModel answers to analysis prompts.
const AnalysisReply = `{"sentiment_score": 0.6, "sentiment_label": "positive", "key_themes": ["friends", "music"], "suggested_strategies": ["write down three good moments"]}`

// ChatReply is what JournalModel answers to chat prompts.
const ChatReply = "That sounds like a lovely day. What made it special?"

// PromptReply is what JournalModel answers to prompt generation.
const PromptReply = "What small moment today would you like to remember?"

// Harness is a wired application plus handles for assertions.
type Harness struct {
	App    *app.App
	DB     *gorm.DB
	Config *config.AppConfig
	Model  *llmtest.FakeModel
}

// New builds the application. A nil h uses JournalModel.
func New(t *testing.T, h llmtest.Handler) *Harness {
	t.Helper()
	if h == nil {
		h = JournalModel()
	}
	cfg := &config.AppConfig{
		AppEnv:             "test",
		AppName:            "Mindful Journal",
		CorsAllowedOrigins: []string{"*"},
		CacheTTLExpiration: time.Minute,
		JWTSecretKey:       "test-secret",
		JWTAlgorithm:       "HS256",
		AccessTokenExpire:  time.Hour,
	}
	db := testutil.NewDB(t)
	fake := llmtest.New(h)
	ai := llm.NewWithModel(llm.Config{
		Provider:         llm.ProviderGemini,
		Temperature:      0.5,
		MaxTokens:        300,
		ArticleMaxTokens: 1024,
		Timeout:          5 * time.Second,
	}, fake, zerolog.Nop())

	a := app.New(cfg, app.Deps{DB: db, Cache: cache.NopCache{}, AI: ai, Log: zerolog.Nop()})
	harness := &Harness{App: a, DB: db, Config: cfg, Model: fake}
	t.Cleanup(func() { harness.Wait(t) })
	return harness
}

// JournalModel answers every template the application uses.
func JournalModel() llmtest.Handler {
	return func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Analyze the following journal entry"):
			return AnalysisReply, nil
		case strings.Contains(prompt, "Recent entries:"):
			return PromptReply, nil
		case strings.Contains(prompt, "journaling companion. Respond"):
			return ChatReply, nil
		}
		for _, label := range service.VariationLabels {
			if strings.Contains(prompt, "with this focus: "+label) {
				return fmt.Sprintf(`{"title": %q, "body": "A few kind words."}`, label), nil
			}
		}
		return "", errors.New("unexpected prompt")
	}
}

// Register creates an account and returns a bearer token for it.
func (h *Harness) Register(t *testing.T, email string) (*model.User, string) {
	t.Helper()
	ctx := context.Background()
	user, err := h.App.Users.Register(ctx, model.UserCreate{Email: email, Password: "correct-horse"})
	require.NoError(t, err)
	token, err := h.App.Users.Login(ctx, email, "correct-horse")
	require.NoError(t, err)
	return user, token.AccessToken
}

// Wait blocks until every scheduled pipeline has finished.
func (h *Harness) Wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, h.App.Dispatcher.Shutdown(ctx))
}
