package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
)

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and makes it the default.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.LogFormat {
	case "", "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// loadConfigAndLogger is the common start of every command.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
