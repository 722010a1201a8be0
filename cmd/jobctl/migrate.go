package main

import (
	"context"
	"fmt"

	"lynxhire/internal/config"
	"lynxhire/internal/database/migration"
	"lynxhire/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		db, err := connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		runner := migration.Runner{FS: migrations.FS, Logger: log}
		if err := runner.Run(context.Background(), db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied")
		return nil
	},
}
