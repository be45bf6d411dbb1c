package config

import (
	"fmt"

	"github.com/christiantyemele/rtop/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "No configuration loaded", "")
	}

	if cfg.SampleInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be positive, got %s", envName(keySampleInterval), cfg.SampleInterval),
			"Try "+DefaultSampleInterval.String())
	}
	if cfg.SampleInterval < MinSampleInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s of %s would hammer the system", envName(keySampleInterval), cfg.SampleInterval),
			"Use at least "+MinSampleInterval.String())
	}

	if cfg.TickInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s must be positive, got %s", envName(keyTickInterval), cfg.TickInterval),
			"Try "+DefaultTickInterval.String())
	}

	return nil
}
