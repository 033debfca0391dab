package llm

import (
	"errors"
	"fmt"
)

// ErrMissingCredential means the selected provider has no API key configured.
var ErrMissingCredential = errors.New("llm: provider credential not configured")

// Failure kinds reported in logs and metrics.
const (
	KindConfig          = "config"
	KindProvider        = "provider"
	KindMalformedOutput = "malformed_output"
	KindTemplate        = "template"
)

// ProviderError wraps a network or API failure from the LLM backend.
type ProviderError struct {
	Provider Provider
	Template string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm %s (%s): provider error: %v", e.Template, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedOutputError means the response did not decode or validate
// against the expected schema.
type MalformedOutputError struct {
	Template string
	Snippet  string
	Err      error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("llm %s: malformed output: %v (snippet: %s)", e.Template, e.Err, e.Snippet)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// TemplateError means the prompt could not be rendered from the given variables.
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("llm %s: render prompt: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// FailureKind classifies an adapter error. It returns "" for nil.
func FailureKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		pe *ProviderError
		me *MalformedOutputError
		te *TemplateError
	)
	switch {
	case errors.Is(err, ErrMissingCredential):
		return KindConfig
	case errors.As(err, &me):
		return KindMalformedOutput
	case errors.As(err, &te):
		return KindTemplate
	case errors.As(err, &pe):
		return KindProvider
	default:
		return KindProvider
	}
}
