// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minhdao/carlex/internal/platform/config"
	"github.com/minhdao/carlex/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  `Runs all pending SQL migrations from the configured migration path. Idempotent: an up-to-date schema is a no-op.`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// runMigrate skips the full runtime: migrations need the database URL and
// nothing else, and must work while Redis is down.
func runMigrate(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("app", "carlex"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger)
}
