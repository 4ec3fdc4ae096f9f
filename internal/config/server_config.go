package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type ServerConfig struct {
	Address                string        `mapstructure:"address"`
	MetricsAddress         string        `mapstructure:"metrics_address"`
	AllowedOrigins         []string      `mapstructure:"allowed_origins"`
	VerifySchedule         string        `mapstructure:"verify_schedule"`
	SetupPromptQuietPeriod time.Duration `mapstructure:"setup_prompt_quiet_period"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}

	if config.SetupPromptQuietPeriod <= 0 {
		errs = append(errs, fmt.Errorf("setup_prompt_quiet_period must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.address":         "SERVER_ADDRESS",
		"server.metrics_address": "METRICS_ADDRESS",
		"server.verify_schedule": "VERIFY_SCHEDULE",
	})
}
