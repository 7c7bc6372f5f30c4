package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skillsenselab/audioscribe/internal/httpclient"
)

// Adapter is a config-driven generation client that works with any provider
// via the Dialect pattern. The HTTP client supplies timeout, retry, and error
// classification; the dialect supplies provider-specific mapping.
type Adapter struct {
	http    *httpclient.Client
	dialect Dialect
	model   string
	temp    float64
}

// New creates an adapter from config using the global dialect registry.
func New(cfg Config) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(dialect, cfg)
}

// NewWithDialect creates an adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, fmt.Errorf("llm: dialect is required")
	}
	cfg.applyDefaults()

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: cfg.Headers,
		Query:   cfg.Query,
		Retry:   cfg.Retry,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}

	return &Adapter{
		http:    client,
		dialect: dialect,
		model:   cfg.Model,
		temp:    cfg.Temperature,
	}, nil
}

// Name returns the dialect name.
func (a *Adapter) Name() string { return a.dialect.Name() }

// Complete sends a completion request and returns the generated text.
func (a *Adapter) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return nil, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := a.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.dialect.GeneratePath(req.Model),
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: complete: %w", err)
	}

	result, err := a.dialect.ParseResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: parse response: %w", err)
	}
	return result, nil
}
