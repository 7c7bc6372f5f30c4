// Package config loads service configuration from YAML, .env files, and the
// environment, in that order of increasing precedence.
package config

import (
	"fmt"

	"github.com/skillsenselab/audioscribe/internal/corrector"
	"github.com/skillsenselab/audioscribe/internal/logger"
	"github.com/skillsenselab/audioscribe/internal/observability"
	"github.com/skillsenselab/audioscribe/internal/recognizer"
	"github.com/skillsenselab/audioscribe/internal/server"
	"github.com/skillsenselab/audioscribe/internal/transcription/whisper"
	"github.com/skillsenselab/audioscribe/internal/validation"
)

// Config is the full service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	// StagingDir is where uploads are staged. Empty means the OS temp dir.
	StagingDir string `yaml:"staging_dir" mapstructure:"staging_dir"`

	// FFmpegBinary is the ffmpeg executable used for audio decoding.
	FFmpegBinary string `yaml:"ffmpeg_binary" mapstructure:"ffmpeg_binary"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Whisper       whisper.Config       `yaml:"whisper" mapstructure:"whisper"`
	Recognizer    recognizer.Config    `yaml:"recognizer" mapstructure:"recognizer"`
	Corrector     corrector.Config     `yaml:"corrector" mapstructure:"corrector"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies default values to all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "audioscribe"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Recognizer.ApplyDefaults()
	c.Corrector.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}
