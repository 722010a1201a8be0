package main

import (
	"context"
	"fmt"

	"lynxhire/internal/config"
	"lynxhire/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo accounts and job postings",
	Long: fmt.Sprintf("Creates %s and %s with the given password, a company and a few active postings. Existing rows are left alone.",
		seeder.DemoEmployerEmail, seeder.DemoCandidateEmail),
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

		runner := seeder.Runner{Seeders: seeder.Demo(seedPassword), Logger: log}
		if err := runner.Run(context.Background(), db); err != nil {
			return err
		}
		log.Info("demo data loaded")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "lynxhire-demo", "password for the demo accounts")
}
