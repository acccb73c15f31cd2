package main

import (
	"errors"
	"log/slog"
)

// Config validation errors
var (
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'console'")
)

// Config holds the tool's environment configuration (SPARSEDUMP_ prefix).
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// ValidateConfig validates the configuration and returns an error if invalid.
func ValidateConfig(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	return nil
}

// Level maps the configured log level onto slog's levels.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
