package config

import "time"

// EnvPrefix prefixes every environment variable rtop reads.
const EnvPrefix = "RTOP"

// Defaults.
const (
	DefaultSampleInterval = 50 * time.Millisecond
	DefaultTickInterval   = 16 * time.Millisecond

	// MinSampleInterval bounds how hard the sampler may poll the OS.
	MinSampleInterval = 10 * time.Millisecond
)

// Config holds runtime settings for the dashboard.
type Config struct {
	// SampleInterval is the pause between metric refreshes (RTOP_SAMPLE_INTERVAL).
	SampleInterval time.Duration `yaml:"sample_interval" mapstructure:"sample_interval"`

	// TickInterval is the render cadence (RTOP_TICK_INTERVAL).
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`

	// LogFile receives log output while the dashboard owns the terminal
	// (RTOP_LOG_FILE). Empty discards it.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SampleInterval: DefaultSampleInterval,
		TickInterval:   DefaultTickInterval,
	}
}
