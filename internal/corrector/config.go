package corrector

import (
	"time"

	"github.com/skillsenselab/audioscribe/internal/httpclient"
	"github.com/skillsenselab/audioscribe/internal/llm/gemini"
	"github.com/skillsenselab/audioscribe/internal/resilience"
)

// Config holds grammar correction settings.
type Config struct {
	// APIKey authenticates against the generation API. Usually sourced from
	// the GEMINI_API_KEY environment variable. Empty disables correction.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL is the generation API endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Model is the generation model to use.
	Model string `mapstructure:"model" yaml:"model"`

	// Timeout bounds each individual attempt against the generation API.
	// Retries of transient failures each get a fresh timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// MaxAttempts is the total number of tries for rate-limited or
	// temporarily unavailable upstreams.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// RetryBackoff is the initial delay between attempts. Doubles each retry.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = gemini.DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 4
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = time.Second
	}
}

// retryConfig builds the retry policy: transient upstream statuses only,
// doubling backoff between attempts.
func (c *Config) retryConfig() *resilience.RetryConfig {
	return &resilience.RetryConfig{
		MaxAttempts:    c.MaxAttempts,
		InitialBackoff: c.RetryBackoff,
		BackoffFactor:  2,
		RetryIf:        httpclient.IsTransientStatus,
	}
}
