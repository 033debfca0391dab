package service

import (
	"context"

	"github.com/aebalz/mindful-journal/internal/llm"
)

// AIClient is the part of the LLM adapter the services use.
type AIClient interface {
	Invoke(ctx context.Context, tmpl llm.Template, vars map[string]string) (string, error)
	InvokeJSON(ctx context.Context, tmpl llm.Template, vars map[string]string, out any) error
}
