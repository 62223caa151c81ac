package main

import (
	"fmt"

	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		Long:  "Apply every pending migration from MIGRATIONS_PATH to the database at PGSQL_URL.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL must be set to run migrations")
			}
			if cfg.StorageDriver != config.StoragePostgres {
				logger.Warn("STORAGE_DRIVER is not postgres, the migrated schema will not be used by serve")
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		},
	}
}
