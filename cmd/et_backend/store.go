package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/cache/redisstore"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/memory"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
)

// openStore connects the key-value backend selected by STORAGE_DRIVER.
// The returned cleanup func is never nil.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KeyValueStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		store, err := redisstore.NewKVStore(ctx, redisstore.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Using Redis store", slog.String("addr", cfg.RedisAddr), slog.Int("db", cfg.RedisDB))
		return store, closeWith(store, logger), nil

	case config.StoragePostgres:
		if cfg.EnableDBCheck {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return nil, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewKVStore(pool), func() { database.ClosePgxPool(pool, logger) }, nil

	case config.StorageSQLite:
		store, err := sqlite.NewKVStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("Using SQLite store", slog.String("path", cfg.SQLitePath))
		return store, closeWith(store, logger), nil

	default:
		logger.Warn("Using in-memory store, data will be lost on restart")
		return memory.NewKVStore(), func() {}, nil
	}
}

func closeWith(c portsrepo.Closer, logger *slog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("Failed to close store", slog.String("error", err.Error()))
		}
	}
}
