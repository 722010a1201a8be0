package main

import (
	"context"
	"time"

	"lynxhire/internal/config"
	"lynxhire/internal/database"
	dbpostgres "lynxhire/internal/database/postgres"
	"lynxhire/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const app = "jobctl"

var (
	debug bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "jobctl runs operator tasks against the LynxHire database and configuration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func newLogger(cfg config.Config) *logrus.Logger {
	level := cfg.App.LogLevel
	if debug {
		level = "debug"
	}
	return logger.New(level)
}

func connect(cfg config.Config) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return dbpostgres.Connect(ctx, cfg.Database)
}
