package main

import (
	"context"
	"fmt"
	"strings"

	"lynxhire/internal/config"
	"lynxhire/internal/pkg/jwt"
	"lynxhire/internal/repository"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Issue an access token for an existing profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		profiles := repository.NewPostgresProfileRepository(db)
		p, err := profiles.GetByEmail(context.Background(), strings.ToLower(strings.TrimSpace(args[0])))
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
		tok, err := svc.GenerateAccessToken(p.ID, p.Email, string(p.Role))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}
