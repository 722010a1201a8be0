package billing

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCheckoutCompleted   Kind = "checkout.session.completed"
	KindSubscriptionUpdated Kind = "customer.subscription.updated"
	KindSubscriptionDeleted Kind = "customer.subscription.deleted"
)

// Event is a verified provider callback. Each arm is a pure transition over
// the subscription it targets, so replaying it yields the same state.
type Event interface {
	Kind() Kind
	Apply(current Subscription) Subscription
}

// Envelope carries the provider's event id alongside the decoded event.
// Event is nil for kinds the service does not react to.
type Envelope struct {
	ID    string
	Type  string
	Event Event
}

type CheckoutCompleted struct {
	UserID         uuid.UUID
	Plan           Plan
	SubscriptionID string
	CustomerID     string
}

func (CheckoutCompleted) Kind() Kind { return KindCheckoutCompleted }

// Actionable is false when the session metadata lacks the user or plan.
func (e CheckoutCompleted) Actionable() bool {
	return e.UserID != uuid.Nil && e.Plan != ""
}

func (e CheckoutCompleted) Apply(current Subscription) Subscription {
	next := current
	next.ProfileID = e.UserID
	next.Plan = e.Plan
	next.Status = StatusActive
	if e.SubscriptionID != "" {
		next.SubscriptionID = strPtr(e.SubscriptionID)
	}
	if e.CustomerID != "" {
		next.CustomerID = strPtr(e.CustomerID)
	}
	return next
}

type SubscriptionUpdated struct {
	SubscriptionID string
	UserID         uuid.UUID
	ProviderStatus string
	PeriodEnd      *time.Time
	Plan           Plan
}

func (SubscriptionUpdated) Kind() Kind { return KindSubscriptionUpdated }

// Actionable is false for subscriptions that were not created through our checkout.
func (e SubscriptionUpdated) Actionable() bool {
	return e.SubscriptionID != "" && e.UserID != uuid.Nil
}

func (e SubscriptionUpdated) Apply(current Subscription) Subscription {
	next := current
	next.Status = MapProviderStatus(e.ProviderStatus)
	next.Plan = e.Plan
	if next.Plan == "" {
		next.Plan = PlanFree
	}
	if e.PeriodEnd != nil {
		end := e.PeriodEnd.UTC()
		next.CurrentPeriodEnd = &end
	}
	return next
}

type SubscriptionDeleted struct {
	SubscriptionID string
}

func (SubscriptionDeleted) Kind() Kind { return KindSubscriptionDeleted }

func (e SubscriptionDeleted) Apply(current Subscription) Subscription {
	next := current
	next.Plan = PlanFree
	next.Status = StatusCancelled
	next.SubscriptionID = nil
	return next
}

func strPtr(s string) *string {
	return &s
}
