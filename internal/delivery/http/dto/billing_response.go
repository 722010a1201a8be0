package dto

import (
	"time"

	"lynxhire/internal/config"
	"lynxhire/internal/domain/billing"
)

type CheckoutRequest struct {
	Plan string `json:"plan"`
}

type RedirectResponse struct {
	URL string `json:"url"`
}

type SubscriptionResponse struct {
	Plan             string     `json:"plan"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	HasBillingPortal bool       `json:"has_billing_portal"`
}

type PlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

func NewSubscriptionResponse(s billing.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:             string(s.Plan),
		Status:           string(s.Status),
		CurrentPeriodEnd: s.CurrentPeriodEnd,
		HasBillingPortal: s.CustomerID != nil && *s.CustomerID != "",
	}
}

func NewPlanResponses(plans []config.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{
			ID:          p.ID,
			Name:        p.Name,
			PriceCents:  p.PriceCents,
			Currency:    p.Currency,
			Description: p.Description,
		})
	}
	return out
}
