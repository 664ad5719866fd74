// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables over the defaults.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// HTTP server timeouts in milliseconds.
	ReadTimeoutMS     int `koanf:"read_timeout_ms"`
	WriteTimeoutMS    int `koanf:"write_timeout_ms"`
	IdleTimeoutMS     int `koanf:"idle_timeout_ms"`
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsEnabled toggles Prometheus recording. /metrics stays mounted.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		IdleTimeoutMS:     60_000,
		ShutdownTimeoutMS: 30_000,
		MetricsEnabled:    true,
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration { return ms(c.ReadTimeoutMS) }

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration { return ms(c.WriteTimeoutMS) }

// IdleTimeout returns IdleTimeoutMS as a duration.
func (c *Config) IdleTimeout() time.Duration { return ms(c.IdleTimeoutMS) }

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration { return ms(c.ShutdownTimeoutMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// Validate checks field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	timeouts := []struct {
		name string
		v    int
	}{
		{"read_timeout_ms", c.ReadTimeoutMS},
		{"write_timeout_ms", c.WriteTimeoutMS},
		{"idle_timeout_ms", c.IdleTimeoutMS},
		{"shutdown_timeout_ms", c.ShutdownTimeoutMS},
	}
	for _, t := range timeouts {
		if t.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, t.name, t.v)
		}
	}
	return nil
}
