package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/model"
)

// Analyzer produces a structured analysis of journal text.
type Analyzer interface {
	// Analyze returns nil when no analysis could be produced.
	Analyze(ctx context.Context, text string) *model.AIAnalysisResult
}

// AnalysisService sends entry text through the analysis template.
type AnalysisService struct {
	ai  AIClient
	log zerolog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(ai AIClient, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{ai: ai, log: log.With().Str("component", "analysis").Logger()}
}

// Analyze never returns an error: empty input, provider failures and
// malformed output all yield nil.
func (s *AnalysisService) Analyze(ctx context.Context, text string) *model.AIAnalysisResult {
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Msg("skipping analysis of empty entry")
		return nil
	}

	var result model.AIAnalysisResult
	if err := s.ai.InvokeJSON(ctx, llm.AnalysisTemplate, map[string]string{"text": text}, &result); err != nil {
		s.log.Error().Err(err).Str("failure_kind", llm.FailureKind(err)).Msg("journal analysis failed")
		return nil
	}
	result.Normalize()
	return &result
}
