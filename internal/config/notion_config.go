package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net/url"
)

type NotionConfig struct {
	BaseURL              string  `mapstructure:"base_url"`
	APIVersion           string  `mapstructure:"api_version"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
	// StatusPropertyType is "status" or "select", whichever the database's Status column is.
	StatusPropertyType string `mapstructure:"status_property_type"`
}

func (config NotionConfig) validate() error {
	var errs []error

	if parsed, err := url.Parse(config.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("invalid variable: base_url %q", config.BaseURL))
	}

	if config.APIVersion == "" {
		errs = append(errs, fmt.Errorf("missing variable: api_version"))
	}

	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be non-negative"))
	}

	if config.StatusPropertyType != "status" && config.StatusPropertyType != "select" {
		errs = append(errs, fmt.Errorf("status_property_type must be \"status\" or \"select\", got %q",
			config.StatusPropertyType))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config NotionConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"notion.base_url":                "NOTION_BASE_URL",
		"notion.api_version":             "NOTION_API_VERSION",
		"notion.max_requests_per_second": "NOTION_MAX_REQUESTS_PER_SECOND",
		"notion.status_property_type":    "NOTION_STATUS_PROPERTY_TYPE",
	})
}
