package recognizer

import "time"

// Config holds recognition orchestration settings.
type Config struct {
	// MaxConcurrent bounds simultaneous recognitions. Speech models are
	// memory-heavy, so the default is conservative.
	MaxConcurrent int `mapstructure:"max_concurrent" yaml:"max_concurrent"`

	// QueuePatience is how long a request waits for a recognition slot
	// before being rejected.
	QueuePatience time.Duration `mapstructure:"queue_patience" yaml:"queue_patience"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 2
	}
	if c.QueuePatience == 0 {
		c.QueuePatience = 30 * time.Second
	}
}
