// Package llmtest provides a scriptable llms.Model for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Handler produces the reply for one rendered prompt.
type Handler func(ctx context.Context, prompt string) (string, error)

// FakeModel implements llms.Model by delegating to Handler.
type FakeModel struct {
	Handler Handler

	mu      sync.Mutex
	prompts []string
	options []llms.CallOptions
}

// New returns a FakeModel backed by h.
func New(h Handler) *FakeModel {
	return &FakeModel{Handler: h}
}

// Reply returns a FakeModel that always answers with text.
func Reply(text string) *FakeModel {
	return New(func(context.Context, string) (string, error) { return text, nil })
}

func (f *FakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var sb strings.Builder
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				sb.WriteString(tc.Text)
			}
		}
	}
	prompt := sb.String()

	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, opts)
	f.mu.Unlock()

	out, err := f.Handler(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: out}}}, nil
}

func (f *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Prompts returns every prompt received so far.
func (f *FakeModel) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Options returns the call options of every request so far.
func (f *FakeModel) Options() []llms.CallOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llms.CallOptions(nil), f.options...)
}
