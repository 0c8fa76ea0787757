package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"astrotrade/internal/logger"
	"astrotrade/internal/metrics"
	"astrotrade/internal/service"
	"astrotrade/internal/store"
)

// initializeSystem loads .env and sets up logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// configPath picks the --config flag, then ASTROTRADE_CONFIG, then config.yaml.
func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("ASTROTRADE_CONFIG"); v != "" {
		return v
	}
	return store.DefaultPath
}

// loadConfig falls back to built-in defaults when the default file is absent.
func loadConfig(ctx context.Context, flag string) (*store.Config, error) {
	path := configPath(flag)
	cfg, err := store.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) && flag == "" {
		logger.Warn(ctx, "Config file not found, using defaults", "path", path)
		return store.Default(), nil
	}
	logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
	return nil, err
}

// initializeService builds the calendar service for cfg.
func initializeService(ctx context.Context, cfg *store.Config, m *metrics.Registry) (*service.Service, error) {
	svc, err := service.NewFromConfig(cfg, m)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize service", err)
		return nil, err
	}
	logger.Debug(ctx, "Service initialized",
		"profiles", len(cfg.Profiles),
		"holidays", svc.Holidays().Len(),
		"workers", cfg.Workers,
	)
	return svc, nil
}

func shutdown(ctx context.Context) {
	if err := logger.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush traces: %v\n", err)
	}
}
