package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/christiantyemele/rtop/internal/errors"
	"github.com/spf13/viper"
)

const (
	keySampleInterval = "sample_interval"
	keyTickInterval   = "tick_interval"
	keyLogFile        = "log_file"
)

// Load reads the configuration from the environment and validates it.
// There is no config file; every setting is an RTOP_* variable.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg, err := parseConfig(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keySampleInterval, DefaultSampleInterval.String())
	v.SetDefault(keyTickInterval, DefaultTickInterval.String())
	v.SetDefault(keyLogFile, "")
}

func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.SampleInterval, err = parseDuration(v, keySampleInterval); err != nil {
		return nil, err
	}
	if cfg.TickInterval, err = parseDuration(v, keyTickInterval); err != nil {
		return nil, err
	}
	cfg.LogFile = strings.TrimSpace(v.GetString(keyLogFile))

	return cfg, nil
}

// parseDuration reads key as a Go duration string ("50ms", "1s").
func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't parse %s=%q as a duration", envName(key), raw),
			"Use a Go duration like 50ms or 1s")
	}
	return d, nil
}

// envName returns the environment variable backing key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}
