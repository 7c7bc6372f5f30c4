package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps well-known environment variables onto config keys. The
// Gemini credential keeps its conventional name rather than a nested one.
var envBindings = map[string]string{
	"corrector.api_key": "GEMINI_API_KEY",
	"whisper.url":       "WHISPER_URL",
	"server.port":       "PORT",
	"logging.level":     "LOG_LEVEL",
}

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// Load reads configuration into cfg: YAML file first, then .env, then real
// environment variables. Missing files are not errors; the environment alone
// is a complete configuration source.
func Load(cfg *Config, opts ...LoaderOption) error {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFirst(
			"./cmd/server/config.yml",
			"../cmd/server/config.yml",
			"./config.yml",
		)
	}
	if o.envFile == "" {
		o.envFile = findFirst(".env", "../.env")
	}

	// .env values become process env vars so viper's bindings see them.
	// Real environment variables win over .env contents.
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", o.envFile, err)
		}
	}

	v := viper.New()
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", o.configFile, err)
		}
	}

	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

// findFirst returns the first path that exists, or empty.
func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
