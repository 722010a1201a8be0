package billing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanGrowth  Plan = "growth"
)

func ParsePlan(s string) (Plan, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanFree:
		return PlanFree, true
	case PlanStarter:
		return PlanStarter, true
	case PlanGrowth:
		return PlanGrowth, true
	default:
		return "", false
	}
}

// Paid reports whether the plan is sold through checkout.
func (p Plan) Paid() bool {
	return p == PlanStarter || p == PlanGrowth
}

type Status string

const (
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
)

// MapProviderStatus folds the payment provider's subscription status onto the
// local set. Anything unrecognized is treated as active.
func MapProviderStatus(providerStatus string) Status {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "past_due":
		return StatusPastDue
	case "canceled", "cancelled":
		return StatusCancelled
	default:
		return StatusActive
	}
}

type Subscription struct {
	ProfileID        uuid.UUID
	Plan             Plan
	Status           Status
	CustomerID       *string
	SubscriptionID   *string
	CurrentPeriodEnd *time.Time
}

// Default is the state of an employer that never went through checkout.
func Default(profileID uuid.UUID) Subscription {
	return Subscription{ProfileID: profileID, Plan: PlanFree, Status: StatusActive}
}
