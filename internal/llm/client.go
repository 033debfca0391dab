package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
)

// Client is the single entry point to the configured LLM backend.
// It is safe for concurrent use.
type Client struct {
	cfg      Config
	model    llms.Model
	validate *validator.Validate
	log      zerolog.Logger
}

// New builds a client for cfg.Provider. A missing credential is not fatal:
// the client is returned and each call reports ErrMissingCredential.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	model, err := newModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("component", "llm").Str("provider", string(cfg.Provider)).Logger()
	if model == nil {
		log.Warn().Msg("no API key configured for LLM provider; AI features will degrade to fallbacks")
	}
	return NewWithModel(cfg, model, log), nil
}

// NewWithModel builds a client around an existing model.
func NewWithModel(cfg Config, model llms.Model, log zerolog.Logger) *Client {
	return &Client{
		cfg:      cfg,
		model:    model,
		validate: validator.New(),
		log:      log,
	}
}

// Provider reports the configured backend.
func (c *Client) Provider() Provider { return c.cfg.Provider }

// Invoke renders tmpl and returns the trimmed free-text response.
func (c *Client) Invoke(ctx context.Context, tmpl Template, vars map[string]string) (string, error) {
	text, err := c.call(ctx, tmpl, vars)
	c.observe(tmpl, err)
	if err != nil {
		return "", err
	}
	return text, nil
}

// InvokeJSON renders tmpl, decodes the response into out and validates it.
// out must be a pointer to a struct.
func (c *Client) InvokeJSON(ctx context.Context, tmpl Template, vars map[string]string, out any) error {
	text, err := c.call(ctx, tmpl, vars)
	if err == nil {
		err = c.decode(tmpl, text, out)
	}
	c.observe(tmpl, err)
	return err
}

func (c *Client) call(ctx context.Context, tmpl Template, vars map[string]string) (string, error) {
	if c.model == nil {
		return "", ErrMissingCredential
	}

	prompt, err := tmpl.Render(vars)
	if err != nil {
		return "", &TemplateError{Template: tmpl.Name, Err: err}
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, c.options(tmpl)...)
	if err != nil {
		return "", &ProviderError{Provider: c.cfg.Provider, Template: tmpl.Name, Err: err}
	}
	c.log.Debug().Str("template", tmpl.Name).Dur("elapsed", time.Since(start)).Msg("llm call completed")
	return strings.TrimSpace(text), nil
}

func (c *Client) options(tmpl Template) []llms.CallOption {
	maxTokens := c.cfg.MaxTokens
	if tmpl.Long && c.cfg.ArticleMaxTokens > 0 {
		maxTokens = c.cfg.ArticleMaxTokens
	}

	opts := []llms.CallOption{llms.WithTemperature(c.cfg.Temperature)}
	if maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(maxTokens))
	}
	if tmpl.Structured {
		opts = append(opts, llms.WithJSONMode())
	}
	return opts
}

func (c *Client) decode(tmpl Template, text string, out any) error {
	if err := DecodeJSON(text, out); err != nil {
		return &MalformedOutputError{Template: tmpl.Name, Snippet: snippet(text), Err: err}
	}
	if err := c.validate.Struct(out); err != nil {
		return &MalformedOutputError{Template: tmpl.Name, Snippet: snippet(text), Err: fmt.Errorf("schema validation: %w", err)}
	}
	return nil
}

func (c *Client) observe(tmpl Template, err error) {
	if err == nil {
		aiCallsTotal.WithLabelValues(tmpl.Name, "ok").Inc()
		return
	}
	kind := FailureKind(err)
	aiCallsTotal.WithLabelValues(tmpl.Name, kind).Inc()
	c.log.Warn().Err(err).Str("template", tmpl.Name).Str("failure_kind", kind).Msg("llm call failed")
}
