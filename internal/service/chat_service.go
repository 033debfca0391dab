package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/model"
)

const (
	chatFallbackReply = "I apologize, but I'm having trouble understanding. Could you try rephrasing?"
	chatFailure       = "Failed to generate response"
)

// ChatService answers free-form messages as a supportive companion.
type ChatService struct {
	ai  AIClient
	log zerolog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(ai AIClient, log zerolog.Logger) *ChatService {
	return &ChatService{ai: ai, log: log.With().Str("component", "chat").Logger()}
}

// Respond always returns a reply. When the model fails the canned reply is
// used and Error is set.
func (s *ChatService) Respond(ctx context.Context, message string) model.ChatResponse {
	out, err := s.ai.Invoke(ctx, llm.ChatTemplate, map[string]string{"message": strings.TrimSpace(message)})
	if err == nil && strings.TrimSpace(out) != "" {
		return model.ChatResponse{Response: out}
	}
	if err != nil {
		s.log.Warn().Err(err).Str("failure_kind", llm.FailureKind(err)).Msg("chat response failed")
	}
	failure := chatFailure
	return model.ChatResponse{Response: chatFallbackReply, Error: &failure}
}
