package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/llm/llmtest"
)

const analysisJSON = `{"sentiment_score": -0.4, "sentiment_label": "negative", "key_themes": ["work", "sleep"], "suggested_strategies": ["take a short walk"]}`

func newAI(h llmtest.Handler) (*llm.Client, *llmtest.FakeModel) {
	fake := llmtest.New(h)
	cfg := llm.Config{Provider: llm.ProviderGemini, Temperature: 0.5, MaxTokens: 300, ArticleMaxTokens: 1024, Timeout: time.Second}
	return llm.NewWithModel(cfg, fake, zerolog.Nop()), fake
}

// journalModel answers analysis and article prompts. An empty analysis
// makes the analysis call fail; labels in failing make those variants fail.
func journalModel(analysis string, failing ...string) llmtest.Handler {
	fail := make(map[string]bool, len(failing))
	for _, l := range failing {
		fail[l] = true
	}
	return func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Analyze the following journal entry") {
			if analysis == "" {
				return "", errors.New("provider unavailable")
			}
			return analysis, nil
		}
		for _, label := range VariationLabels {
			if strings.Contains(prompt, "with this focus: "+label) {
				if fail[label] {
					return "", errors.New("provider unavailable")
				}
				return fmt.Sprintf(`{"title": %q, "body": "Some kind words about %s."}`, label, label), nil
			}
		}
		return "", errors.New("unexpected prompt")
	}
}

type recordingInvalidator struct {
	mu    sync.Mutex
	users []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// inlineScheduler records scheduled tasks and runs them on demand.
type inlineScheduler struct {
	mu    sync.Mutex
	names []string
	tasks []func(ctx context.Context)
}

func (s *inlineScheduler) Go(name string, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	s.tasks = append(s.tasks, fn)
}

func (s *inlineScheduler) runAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, fn := range tasks {
		fn(context.Background())
	}
}

func ptr[T any](v T) *T { return &v }
