package service

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/model"
)

// VariationLabels are the fixed angles an article can be written from.
// One article per label is attempted for every new entry.
var VariationLabels = []string{
	"Understanding the Feeling",
	"Simple Coping Strategies",
	"Practicing Self-Compassion",
	"Shifting Your Perspective",
	"Finding Small Positives/Gratitude",
	"Connecting with Support/Resources",
}

// ArticleVariantGenerator writes one supportive article.
type ArticleVariantGenerator interface {
	// GenerateVariant returns nil when no article could be produced.
	GenerateVariant(ctx context.Context, mood, focusLabel string) *model.GeneratedArticle
}

// ArticleGenerator requests single articles from the LLM.
type ArticleGenerator struct {
	ai  AIClient
	log zerolog.Logger
}

// NewArticleGenerator creates a new ArticleGenerator.
func NewArticleGenerator(ai AIClient, log zerolog.Logger) *ArticleGenerator {
	return &ArticleGenerator{ai: ai, log: log.With().Str("component", "article_generator").Logger()}
}

// IsVariationLabel reports whether label is one of VariationLabels.
func IsVariationLabel(label string) bool {
	return slices.Contains(VariationLabels, label)
}

func (g *ArticleGenerator) GenerateVariant(ctx context.Context, mood, focusLabel string) *model.GeneratedArticle {
	mood = strings.TrimSpace(mood)
	if mood == "" || !IsVariationLabel(focusLabel) {
		g.log.Warn().Str("mood", mood).Str("focus", focusLabel).Msg("rejecting article request with missing mood or unknown focus")
		return nil
	}

	var article model.GeneratedArticle
	err := g.ai.InvokeJSON(ctx, llm.ArticleVariationTemplate, map[string]string{"mood": mood, "focus": focusLabel}, &article)
	if err != nil {
		g.log.Error().Err(err).Str("focus", focusLabel).Str("failure_kind", llm.FailureKind(err)).Msg("article generation failed")
		return nil
	}

	article.Title = strings.TrimSpace(article.Title)
	article.Body = strings.TrimSpace(article.Body)
	if article.Title == "" || article.Body == "" {
		g.log.Warn().Str("focus", focusLabel).Msg("article generation returned empty title or body")
		return nil
	}
	return &article
}
