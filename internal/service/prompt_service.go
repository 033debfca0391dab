package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

const (
	promptContextEntries = 2
	promptSnippetRunes   = 200
	noRecentEntries      = "No recent entries."
)

var defaultPrompts = []string{
	"What are you grateful for today, and why?",
	"Describe one small moment that brought you joy or peace recently.",
	"What's one thing you accomplished today, and how did it make you feel?",
	"If you could talk to your past self from one year ago, what encouragement or advice would you offer?",
	"What is currently weighing on your mind? What's one small, manageable step you could take regarding it?",
	"Describe a recent challenge. What did you learn from navigating it?",
	"What activity helps you feel recharged or centered?",
	"Is there anything you need to forgive yourself or someone else for?",
	"What are you looking forward to in the coming days or weeks?",
	"Reflect on a boundary you set recently. How did it feel?",
}

// Offered instead of the general list when the latest mood reads as low.
var perspectivePrompts = []string{
	"Reflect on one positive interaction or observation from today, however small.",
	"What's one act of kindness (from you or towards you) you experienced recently?",
	"Describe something you appreciate about yourself today.",
	"Think about a past challenge you overcame. What strength did you use then that you can access now?",
	"What is one thing that felt a little easier today than yesterday?",
	"Who is someone you could reach out to this week, and what would you say?",
	"If a close friend felt the way you do now, what would you tell them?",
	"Name one small thing you can do in the next hour to care for yourself.",
	"What is something outside of your control that you can choose to set down for now?",
	"Describe a place, real or imagined, where you feel safe. What makes it feel that way?",
}

var lowMoodIndicators = []string{"negative", "sad", "anxious", "stressed", "angry", "frustrated"}

// PromptService generates a reflective journaling prompt.
type PromptService struct {
	ai      AIClient
	entries repository.JournalRepositoryInterface
	log     zerolog.Logger
}

// NewPromptService creates a new PromptService.
func NewPromptService(ai AIClient, entries repository.JournalRepositoryInterface, log zerolog.Logger) *PromptService {
	return &PromptService{ai: ai, entries: entries, log: log.With().Str("component", "prompt").Logger()}
}

// PromptForUser generates a prompt from the user's most recent entries.
func (s *PromptService) PromptForUser(ctx context.Context, userID uuid.UUID) string {
	recent, err := s.entries.RecentEntries(ctx, userID, promptContextEntries)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load recent entries for prompt")
		recent = nil
	}
	return s.GeneratePrompt(ctx, recent)
}

// GeneratePrompt always returns a usable prompt. recentEntries are expected
// newest first.
func (s *PromptService) GeneratePrompt(ctx context.Context, recentEntries []model.JournalEntry) string {
	out, err := s.ai.Invoke(ctx, llm.PromptGenerationTemplate, map[string]string{"context": BuildPromptContext(recentEntries)})
	if err != nil {
		s.log.Warn().Err(err).Str("failure_kind", llm.FailureKind(err)).Msg("prompt generation failed, using fallback")
		return fallbackPrompt(recentEntries)
	}
	if out = strings.TrimSpace(out); out == "" {
		s.log.Warn().Msg("prompt generation returned empty text, using fallback")
		return fallbackPrompt(recentEntries)
	}
	return out
}

// BuildPromptContext summarises at most the two newest entries.
func BuildPromptContext(recentEntries []model.JournalEntry) string {
	if len(recentEntries) == 0 {
		return noRecentEntries
	}
	if len(recentEntries) > promptContextEntries {
		recentEntries = recentEntries[:promptContextEntries]
	}

	parts := make([]string, 0, len(recentEntries))
	for _, e := range recentEntries {
		line := "Entry from " + e.CreatedAt.Format("2006-01-02")
		if mood := strings.TrimSpace(e.Mood); mood != "" {
			line += fmt.Sprintf(" (mood: %s)", mood)
		}
		parts = append(parts, line+": "+truncate(strings.TrimSpace(e.Content), promptSnippetRunes))
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func fallbackPrompt(recentEntries []model.JournalEntry) string {
	pool := defaultPrompts
	if len(recentEntries) > 0 && isLowMood(recentEntries[0].Mood) {
		pool = perspectivePrompts
	}
	return pool[rand.IntN(len(pool))]
}

func isLowMood(mood string) bool {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return false
	}
	for _, indicator := range lowMoodIndicators {
		if strings.Contains(mood, indicator) {
			return true
		}
	}
	return false
}
