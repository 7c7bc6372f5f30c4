package llm

import (
	"time"

	"github.com/skillsenselab/audioscribe/internal/resilience"
)

// Config holds configuration for creating a generation adapter. It is
// provider-agnostic, the Dialect field selects the provider mapping.
type Config struct {
	// Dialect selects the provider mapping (e.g., "gemini").
	Dialect string `mapstructure:"dialect" yaml:"dialect"`

	// BaseURL is the provider's API base URL.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Model is the default model to use.
	Model string `mapstructure:"model" yaml:"model"`

	// Temperature is the default sampling temperature. 0 means provider default.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`

	// Query are URL query parameters sent with every request. Providers that
	// authenticate via a key-in-URL scheme put the credential here.
	Query map[string]string `mapstructure:"-" yaml:"-"`

	// Retry configures retry behavior for failed requests.
	Retry *resilience.RetryConfig `mapstructure:"retry" yaml:"retry"`
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
}
