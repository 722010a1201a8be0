package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"lynxhire/internal/config"
	"lynxhire/internal/domain/billing"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/logger"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const processedEventTTL = 24 * time.Hour

type CheckoutSessionInput struct {
	ProfileID  uuid.UUID
	Plan       billing.Plan
	CustomerID string
	PriceID    string
	Currency   string
	SuccessURL string
	CancelURL  string
}

// WebhookVerifier authenticates a raw provider callback and decodes it.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (billing.Envelope, error)
}

type PaymentProvider interface {
	CreateCustomer(ctx context.Context, email string, profileID uuid.UUID) (string, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// EventGuard remembers processed provider event ids. An id is only recorded
// after the event was applied, so a failed delivery never blocks its retry.
type EventGuard interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type BillingUsecase interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	InitiateCheckout(ctx context.Context, caller profile.Caller, plan string) (string, error)
	OpenPortal(ctx context.Context, caller profile.Caller) (string, error)
	GetSubscription(ctx context.Context, caller profile.Caller) (billing.Subscription, error)
	Plans() []config.Plan
}

type Billing struct {
	subs      repository.SubscriptionRepository
	profiles  repository.ProfileRepository
	verifier  WebhookVerifier
	provider  PaymentProvider
	guard     EventGuard
	catalog   config.PlanCatalog
	publicURL string
	logger    logrus.FieldLogger
}

type BillingDeps struct {
	Subscriptions repository.SubscriptionRepository
	Profiles      repository.ProfileRepository
	Verifier      WebhookVerifier
	Provider      PaymentProvider
	Guard         EventGuard
	Catalog       config.PlanCatalog
	PublicURL     string
	Logger        logrus.FieldLogger
}

func NewBillingUsecase(d BillingDeps) *Billing {
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	return &Billing{
		subs:      d.Subscriptions,
		profiles:  d.Profiles,
		verifier:  d.Verifier,
		provider:  d.Provider,
		guard:     d.Guard,
		catalog:   d.Catalog,
		publicURL: strings.TrimRight(d.PublicURL, "/"),
		logger:    d.Logger,
	}
}

func (u *Billing) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if u.verifier == nil {
		return ErrNotConfigured
	}

	env, err := u.verifier.Verify(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, billing.ErrMalformedEvent) {
			u.log().WithError(err).Warn("billing webhook malformed")
			return ErrInvalidInput
		}
		u.log().WithError(err).Warn("billing webhook signature rejected")
		return ErrInvalidSignature
	}

	log := u.log().WithFields(logrus.Fields{"event_id": env.ID, "event_type": env.Type})
	if env.Event == nil {
		log.Debug("billing webhook ignored")
		return nil
	}

	key := "billing:event:" + env.ID
	guarded := u.guard != nil && env.ID != ""
	if guarded {
		seen, err := u.guard.Exists(ctx, key)
		switch {
		case err != nil:
			log.WithError(err).Warn("billing event guard unavailable")
		case seen:
			log.Info("billing webhook replay skipped")
			return nil
		}
	}

	if err := u.apply(ctx, env.Event, log); err != nil {
		log.WithError(err).Error("billing webhook handling failed")
		return ErrInternal
	}

	if guarded {
		if _, err := u.guard.SetIfNotExists(context.WithoutCancel(ctx), key, "1", processedEventTTL); err != nil {
			log.WithError(err).Warn("billing event not remembered")
		}
	}
	return nil
}

func (u *Billing) apply(ctx context.Context, evt billing.Event, log logrus.FieldLogger) error {
	switch e := evt.(type) {
	case billing.CheckoutCompleted:
		if !e.Actionable() {
			log.Info("checkout without user or plan metadata ignored")
			return nil
		}
		current, err := u.subs.GetByProfileID(ctx, e.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			current, err = billing.Default(e.UserID), nil
		}
		if err != nil {
			return err
		}
		return u.subs.Save(ctx, e.Apply(current))

	case billing.SubscriptionUpdated:
		if !e.Actionable() {
			log.Info("subscription update without owner metadata ignored")
			return nil
		}
		return u.applyBySubscriptionID(ctx, e.SubscriptionID, e, log)

	case billing.SubscriptionDeleted:
		return u.applyBySubscriptionID(ctx, e.SubscriptionID, e, log)

	default:
		return nil
	}
}

func (u *Billing) applyBySubscriptionID(ctx context.Context, subscriptionID string, evt billing.Event, log logrus.FieldLogger) error {
	if subscriptionID == "" {
		return nil
	}
	current, err := u.subs.GetBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.WithField("subscription_id", subscriptionID).Info("unknown subscription ignored")
			return nil
		}
		return err
	}
	return u.subs.Save(ctx, evt.Apply(current))
}

func (u *Billing) InitiateCheckout(ctx context.Context, caller profile.Caller, plan string) (string, error) {
	if !caller.Authenticated() {
		return "", ErrUnauthorized
	}
	if caller.Role != profile.RoleEmployer {
		return "", ErrRoleForbidden
	}

	p, ok := billing.ParsePlan(plan)
	if !ok || !p.Paid() {
		return "", ErrInvalidPlan
	}
	entry, ok := u.catalog.Get(string(p))
	if !ok {
		return "", ErrInvalidPlan
	}
	if entry.PriceID == "" || u.provider == nil {
		return "", ErrNotConfigured
	}

	owner, err := u.profiles.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", u.internal("load profile", err)
	}

	var customerID string
	sub, err := u.subs.GetByProfileID(ctx, caller.ID)
	switch {
	case err == nil:
		if sub.CustomerID != nil {
			customerID = *sub.CustomerID
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return "", u.internal("load subscription", err)
	}

	if customerID == "" {
		customerID, err = u.provider.CreateCustomer(ctx, owner.Email, caller.ID)
		if err != nil {
			u.log().WithError(err).WithField("profile_id", caller.ID).Error("create billing customer failed")
			return "", ErrUpstream
		}
		if err := u.subs.SetCustomerID(ctx, caller.ID, customerID); err != nil {
			return "", u.internal("persist customer id", err)
		}
	}

	url, err := u.provider.CreateCheckoutSession(ctx, CheckoutSessionInput{
		ProfileID:  caller.ID,
		Plan:       p,
		CustomerID: customerID,
		PriceID:    entry.PriceID,
		Currency:   entry.Currency,
		SuccessURL: u.billingPageURL() + "?success=true",
		CancelURL:  u.billingPageURL() + "?cancelled=true",
	})
	if err != nil {
		u.log().WithError(err).WithField("profile_id", caller.ID).Error("create checkout session failed")
		return "", ErrUpstream
	}
	return url, nil
}

func (u *Billing) OpenPortal(ctx context.Context, caller profile.Caller) (string, error) {
	if !caller.Authenticated() {
		return "", ErrUnauthorized
	}
	if u.provider == nil {
		return "", ErrNotConfigured
	}

	sub, err := u.subs.GetByProfileID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", u.internal("load subscription", err)
	}
	if sub.CustomerID == nil || *sub.CustomerID == "" {
		return "", ErrNotFound
	}

	url, err := u.provider.CreatePortalSession(ctx, *sub.CustomerID, u.billingPageURL())
	if err != nil {
		u.log().WithError(err).WithField("profile_id", caller.ID).Error("create portal session failed")
		return "", ErrUpstream
	}
	return url, nil
}

func (u *Billing) GetSubscription(ctx context.Context, caller profile.Caller) (billing.Subscription, error) {
	if !caller.Authenticated() {
		return billing.Subscription{}, ErrUnauthorized
	}
	sub, err := u.subs.GetByProfileID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return billing.Default(caller.ID), nil
		}
		return billing.Subscription{}, u.internal("load subscription", err)
	}
	return sub, nil
}

func (u *Billing) Plans() []config.Plan {
	return u.catalog.Plans
}

func (u *Billing) billingPageURL() string {
	return u.publicURL + "/dashboard/employer/billing"
}

func (u *Billing) log() logrus.FieldLogger {
	return u.logger
}

func (u *Billing) internal(op string, err error) error {
	u.log().WithError(err).WithField("op", op).Error("billing operation failed")
	return ErrInternal
}
