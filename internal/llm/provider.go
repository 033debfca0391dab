package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/aebalz/mindful-journal/internal/config"
)

// Provider identifies the configured LLM backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider resolves a provider name. Unknown names are an error.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider %q", name)
	}
}

// Config is the resolved adapter configuration. The provider and its
// credential are fixed here and never re-dispatched per call.
type Config struct {
	Provider         Provider
	APIKey           string
	Model            string
	BaseURL          string
	Temperature      float64
	MaxTokens        int
	ArticleMaxTokens int
	Timeout          time.Duration
}

// ConfigFromApp picks the credential and model belonging to LLM_PROVIDER.
func ConfigFromApp(cfg *config.AppConfig) (Config, error) {
	provider, err := ParseProvider(cfg.LLMProvider)
	if err != nil {
		return Config{}, err
	}

	c := Config{
		Provider:         provider,
		Temperature:      cfg.AITemperature,
		MaxTokens:        cfg.AIMaxTokens,
		ArticleMaxTokens: cfg.AIArticleMaxTokens,
		Timeout:          cfg.AICallTimeout,
	}
	switch provider {
	case ProviderGemini:
		c.APIKey = cfg.GoogleAPIKey
		c.Model = cfg.GeminiModel
	case ProviderOpenAI:
		c.APIKey = cfg.OpenAIAPIKey
		c.Model = cfg.OpenAIModel
		c.BaseURL = cfg.OpenAIBaseURL
	}
	return c, nil
}

// newModel builds the langchaingo model for the provider. A missing
// credential yields a nil model; every call then fails with ErrMissingCredential.
func newModel(ctx context.Context, cfg Config) (llms.Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case ProviderGemini:
		opts := []googleai.Option{googleai.WithAPIKey(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, googleai.WithDefaultModel(cfg.Model))
		}
		m, err := googleai.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return m, nil
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}
