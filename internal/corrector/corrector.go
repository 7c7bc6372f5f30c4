// Package corrector fixes grammar, spelling, and punctuation in transcribed
// text using a hosted generation model.
package corrector

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/skillsenselab/audioscribe/internal/errors"
	"github.com/skillsenselab/audioscribe/internal/llm"
	"github.com/skillsenselab/audioscribe/internal/llm/gemini"
	"github.com/skillsenselab/audioscribe/internal/logger"
)

// MinTextLength is the minimum input length accepted for correction. Shorter
// fragments carry too little context to correct meaningfully.
const MinTextLength = 10

// systemInstruction steers the model to return only the corrected text.
const systemInstruction = "You are an expert copy editor and language corrector. Your sole task is to " +
	"correct all grammatical errors, spelling mistakes, punctuation issues, " +
	"and improve fluency in the user-provided Russian transcription. " +
	"Do not add any introductory, conversational, or explanatory text. " +
	"Respond only with the corrected text."

// Corrector sends text through a generation model for grammar correction.
type Corrector struct {
	adapter   *llm.Adapter
	available bool
	log       *logger.Logger
}

// New creates a Corrector. A missing API key is not an error here; the
// corrector is constructed unavailable and every Correct call fails fast
// without touching the network.
func New(cfg Config, log *logger.Logger) (*Corrector, error) {
	cfg.ApplyDefaults()
	log = log.WithComponent("corrector")

	if cfg.APIKey == "" {
		log.Warn("api key not configured, grammar correction disabled")
		return &Corrector{available: false, log: log}, nil
	}

	adapter, err := llm.NewWithDialect(&gemini.Dialect{}, llm.Config{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Query:   map[string]string{"key": cfg.APIKey},
		Retry:   cfg.retryConfig(),
	})
	if err != nil {
		return nil, err
	}

	return &Corrector{adapter: adapter, available: true, log: log}, nil
}

// Available reports whether the corrector has credentials and can serve requests.
func (c *Corrector) Available() bool { return c.available }

// Correct returns the input with grammar, spelling, and punctuation fixed.
func (c *Corrector) Correct(ctx context.Context, text string) (string, error) {
	if !c.available {
		c.log.Error("correction requested but GEMINI_API_KEY is not set")
		return "", apperrors.ExternalService("grammar correction",
			"Grammar correction failed to return a result.")
	}

	resp, err := c.adapter.Complete(ctx, llm.CompletionRequest{
		Messages:     []llm.Message{{Role: "user", Content: text}},
		SystemPrompt: systemInstruction,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			c.log.Warn("model returned a response with no text")
			return "", apperrors.ExternalService("grammar correction",
				"Grammar correction failed to return a result.")
		}
		c.log.Error("grammar correction request failed", logger.ErrorFields("complete", err))
		return "", apperrors.ExternalService("grammar correction",
			"Grammar correction failed to return a result.").WithCause(err)
	}

	return strings.TrimSpace(resp.Content), nil
}
