package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Plan struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	PriceCents  int64  `yaml:"price_cents" json:"price_cents"`
	Currency    string `yaml:"currency" json:"currency"`
	Description string `yaml:"description" json:"description"`
	PriceID     string `yaml:"price_id" json:"-"`
}

type PlanCatalog struct {
	Plans []Plan `yaml:"plans"`
}

func defaultPlans(currency string) []Plan {
	return []Plan{
		{
			ID:          "starter",
			Name:        "Starter",
			PriceCents:  14900,
			Currency:    currency,
			Description: "10 active job postings, Advanced AI matching, Basic ATS",
		},
		{
			ID:          "growth",
			Name:        "Growth",
			PriceCents:  29900,
			Currency:    currency,
			Description: "Unlimited postings, Full AI Suite, Full ATS + Analytics",
		},
	}
}

// LoadPlans builds the paid plan catalog. Entries from PLANS_FILE replace the
// built-in ones by id; price ids from the environment fill any left empty.
func LoadPlans(cfg StripeConfig) (PlanCatalog, error) {
	currency := orDefault(cfg.Currency, "cad")
	plans := defaultPlans(currency)

	if path := strings.TrimSpace(cfg.PlansFile); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return PlanCatalog{}, fmt.Errorf("read plans file: %w", err)
		}
		var file PlanCatalog
		if err := yaml.Unmarshal(b, &file); err != nil {
			return PlanCatalog{}, fmt.Errorf("parse plans file: %w", err)
		}
		plans = mergePlans(plans, file.Plans, currency)
	}

	envPrices := map[string]string{
		"starter": cfg.StarterPriceID,
		"growth":  cfg.GrowthPriceID,
	}
	for i := range plans {
		if plans[i].PriceID == "" {
			plans[i].PriceID = envPrices[plans[i].ID]
		}
	}

	return PlanCatalog{Plans: plans}, nil
}

func mergePlans(base, overrides []Plan, currency string) []Plan {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.ID] = i
	}
	for _, p := range overrides {
		p.ID = strings.ToLower(strings.TrimSpace(p.ID))
		if p.ID == "" {
			continue
		}
		if p.Currency == "" {
			p.Currency = currency
		}
		if i, ok := index[p.ID]; ok {
			base[i] = p
			continue
		}
		index[p.ID] = len(base)
		base = append(base, p)
	}
	return base
}

func (c PlanCatalog) Get(id string) (Plan, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
