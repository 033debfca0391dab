package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aebalz/mindful-journal/internal/llm/llmtest"
	"github.com/aebalz/mindful-journal/internal/model"
)

func TestAnalysisService(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text skips the model", func(t *testing.T) {
		ai, fake := newAI(journalModel(analysisJSON))
		s := NewAnalysisService(ai, zerolog.Nop())
		assert.Nil(t, s.Analyze(ctx, "   \n\t"))
		assert.Empty(t, fake.Prompts())
	})

	t.Run("parses result", func(t *testing.T) {
		ai, fake := newAI(journalModel(analysisJSON))
		s := NewAnalysisService(ai, zerolog.Nop())
		res := s.Analyze(ctx, "Work kept me up again last night.")
		require.NotNil(t, res)
		assert.Equal(t, "negative", *res.SentimentLabel)
		assert.Equal(t, -0.4, *res.SentimentScore)
		assert.Equal(t, []string{"work", "sleep"}, res.KeyThemes)
		assert.Contains(t, fake.Prompts()[0], "Work kept me up again last night.")
	})

	t.Run("failures collapse to nil", func(t *testing.T) {
		for _, reply := range []string{"", "not json at all", `["negative"]`} {
			ai, _ := newAI(journalModel(reply))
			s := NewAnalysisService(ai, zerolog.Nop())
			assert.Nil(t, s.Analyze(ctx, "some journal text"), reply)
		}
	})

	t.Run("loose output is normalized", func(t *testing.T) {
		reply := `{"sentiment_score": 1.2, "sentiment_label": "positive", "key_themes": ["joy", ""], "suggested_strategies": [" call a friend ", "  "]}`
		ai, _ := newAI(journalModel(reply))
		s := NewAnalysisService(ai, zerolog.Nop())
		res := s.Analyze(ctx, "Best day in months.")
		require.NotNil(t, res)
		assert.True(t, res.HasLabel())
		assert.Equal(t, 1.0, *res.SentimentScore)
		assert.Equal(t, []string{"joy"}, res.KeyThemes)
		assert.Equal(t, []string{"call a friend"}, res.SuggestedStrategies)
	})

	t.Run("missing label yields an unusable result", func(t *testing.T) {
		ai, _ := newAI(journalModel(`{"sentiment_score": -7}`))
		s := NewAnalysisService(ai, zerolog.Nop())
		res := s.Analyze(ctx, "some journal text")
		require.NotNil(t, res)
		assert.False(t, res.HasLabel())
		assert.Equal(t, -1.0, *res.SentimentScore)
	})
}

func TestBuildPromptContext(t *testing.T) {
	assert.Equal(t, "No recent entries.", BuildPromptContext(nil))

	long := strings.Repeat("a", 250)
	entries := []model.JournalEntry{
		{Mood: "Anxious", Content: long},
		{Mood: "", Content: "short one"},
		{Mood: "Happy", Content: "should be ignored"},
	}
	ctxStr := BuildPromptContext(entries)
	lines := strings.Split(ctxStr, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "(mood: Anxious)")
	assert.True(t, strings.HasSuffix(lines[0], strings.Repeat("a", 200)+"..."))
	assert.NotContains(t, lines[1], "mood:")
	assert.True(t, strings.HasSuffix(lines[1], ": short one"))
	assert.NotContains(t, ctxStr, "should be ignored")
}

func TestPromptService_GeneratePrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("uses model output", func(t *testing.T) {
		ai, fake := newAI(func(context.Context, string) (string, error) { return "  What felt lighter today?  ", nil })
		s := NewPromptService(ai, nil, zerolog.Nop())
		assert.Equal(t, "What felt lighter today?", s.GeneratePrompt(ctx, nil))
		assert.Contains(t, fake.Prompts()[0], "No recent entries.")
	})

	t.Run("falls back on error", func(t *testing.T) {
		ai, _ := newAI(func(context.Context, string) (string, error) { return "", errors.New("down") })
		s := NewPromptService(ai, nil, zerolog.Nop())
		for i := 0; i < 20; i++ {
			assert.Contains(t, defaultPrompts, s.GeneratePrompt(ctx, nil))
		}
	})

	t.Run("falls back on empty output", func(t *testing.T) {
		ai, _ := newAI(func(context.Context, string) (string, error) { return "   ", nil })
		s := NewPromptService(ai, nil, zerolog.Nop())
		assert.Contains(t, defaultPrompts, s.GeneratePrompt(ctx, []model.JournalEntry{{Mood: "Calm", Content: "fine"}}))
	})

	t.Run("low mood fallback", func(t *testing.T) {
		ai, _ := newAI(func(context.Context, string) (string, error) { return "", errors.New("down") })
		s := NewPromptService(ai, nil, zerolog.Nop())
		got := s.GeneratePrompt(ctx, []model.JournalEntry{{Mood: "Very Stressed", Content: "deadline"}})
		assert.Contains(t, perspectivePrompts, got)
	})

	assert.GreaterOrEqual(t, len(defaultPrompts), 10)
	assert.GreaterOrEqual(t, len(perspectivePrompts), 10)
}

func TestArticleGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects bad input without calling the model", func(t *testing.T) {
		ai, fake := newAI(journalModel(analysisJSON))
		g := NewArticleGenerator(ai, zerolog.Nop())
		assert.Nil(t, g.GenerateVariant(ctx, "  ", VariationLabels[0]))
		assert.Nil(t, g.GenerateVariant(ctx, "Sad", ""))
		assert.Nil(t, g.GenerateVariant(ctx, "Sad", "Something Else"))
		assert.Empty(t, fake.Prompts())
	})

	t.Run("generates each label", func(t *testing.T) {
		ai, _ := newAI(journalModel(analysisJSON))
		g := NewArticleGenerator(ai, zerolog.Nop())
		for _, label := range VariationLabels {
			a := g.GenerateVariant(ctx, "Anxious", label)
			require.NotNil(t, a, label)
			assert.Equal(t, label, a.Title)
		}
	})

	t.Run("blank title or body", func(t *testing.T) {
		for _, reply := range []string{`{"title": "  ", "body": "text"}`, `{"title": "T", "body": ""}`, `oops`} {
			ai, _ := newAI(func(context.Context, string) (string, error) { return reply, nil })
			g := NewArticleGenerator(ai, zerolog.Nop())
			assert.Nil(t, g.GenerateVariant(ctx, "Sad", VariationLabels[2]), reply)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		ai, _ := newAI(journalModel(analysisJSON, VariationLabels[1]))
		g := NewArticleGenerator(ai, zerolog.Nop())
		assert.Nil(t, g.GenerateVariant(ctx, "Sad", VariationLabels[1]))
	})
}

func TestChatService(t *testing.T) {
	ctx := context.Background()

	ai, _ := newAI(func(context.Context, string) (string, error) { return "That sounds hard. I'm here.", nil })
	resp := NewChatService(ai, zerolog.Nop()).Respond(ctx, "rough day")
	assert.Equal(t, "That sounds hard. I'm here.", resp.Response)
	assert.Nil(t, resp.Error)

	failing := llmtest.New(func(context.Context, string) (string, error) { return "", errors.New("down") })
	ai, _ = newAI(failing.Handler)
	resp = NewChatService(ai, zerolog.Nop()).Respond(ctx, "rough day")
	assert.Equal(t, chatFallbackReply, resp.Response)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Failed to generate response", *resp.Error)
}
