package main

import (
	"lynxhire/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type planView struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	PriceCents  int64  `yaml:"price_cents"`
	Currency    string `yaml:"currency"`
	Description string `yaml:"description"`
	PriceID     string `yaml:"price_id"`
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Print the effective subscription plan catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		catalog, err := config.LoadPlans(cfg.Stripe)
		if err != nil {
			return err
		}

		out := make([]planView, 0, len(catalog.Plans))
		for _, p := range catalog.Plans {
			out = append(out, planView{
				ID:          p.ID,
				Name:        p.Name,
				PriceCents:  p.PriceCents,
				Currency:    p.Currency,
				Description: p.Description,
				PriceID:     p.PriceID,
			})
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(map[string]any{"plans": out})
	},
}
