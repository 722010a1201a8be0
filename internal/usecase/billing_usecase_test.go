package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lynxhire/internal/config"
	"lynxhire/internal/domain/billing"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/logger"

	"github.com/google/uuid"
)

func testCatalog() config.PlanCatalog {
	return config.PlanCatalog{Plans: []config.Plan{
		{ID: "starter", Name: "Starter", PriceCents: 14900, Currency: "cad", PriceID: "price_starter"},
		{ID: "growth", Name: "Growth", PriceCents: 29900, Currency: "cad"},
	}}
}

func newBilling(subs *fakeSubs, v WebhookVerifier, p PaymentProvider, g EventGuard, profiles *fakeProfiles) *Billing {
	return NewBillingUsecase(BillingDeps{
		Subscriptions: subs,
		Profiles:      profiles,
		Verifier:      v,
		Provider:      p,
		Guard:         g,
		Catalog:       testCatalog(),
		PublicURL:     "https://lynxhire.test/",
		Logger:        logger.Discard(),
	})
}

func checkoutEnvelope(userID uuid.UUID) billing.Envelope {
	return billing.Envelope{
		ID:   "evt_checkout",
		Type: string(billing.KindCheckoutCompleted),
		Event: billing.CheckoutCompleted{
			UserID:         userID,
			Plan:           billing.PlanStarter,
			SubscriptionID: "sub_1",
			CustomerID:     "cus_1",
		},
	}
}

func TestHandleWebhook_CheckoutCreatesSubscription(t *testing.T) {
	userID := uuid.New()
	subs := newFakeSubs()
	uc := newBilling(subs, fakeVerifier{env: checkoutEnvelope(userID)}, nil, newFakeGuard(), newFakeProfiles())

	if err := uc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := subs.byProfile[userID]
	if got.Plan != billing.PlanStarter || got.Status != billing.StatusActive {
		t.Fatalf("unexpected subscription: %+v", got)
	}
	if got.SubscriptionID == nil || *got.SubscriptionID != "sub_1" {
		t.Fatalf("expected subscription id sub_1")
	}
}

func TestHandleWebhook_ReplayIsIdempotent(t *testing.T) {
	userID := uuid.New()

	t.Run("guarded", func(t *testing.T) {
		subs := newFakeSubs()
		uc := newBilling(subs, fakeVerifier{env: checkoutEnvelope(userID)}, nil, newFakeGuard(), newFakeProfiles())
		for i := 0; i < 3; i++ {
			if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
				t.Fatalf("delivery %d: %v", i, err)
			}
		}
		if subs.saves != 1 {
			t.Fatalf("expected one save, got %d", subs.saves)
		}
	})

	t.Run("guard unavailable", func(t *testing.T) {
		subs := newFakeSubs()
		guard := newFakeGuard()
		guard.err = errors.New("redis down")
		uc := newBilling(subs, fakeVerifier{env: checkoutEnvelope(userID)}, nil, guard, newFakeProfiles())

		if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
			t.Fatalf("first: %v", err)
		}
		first := subs.byProfile[userID]
		if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
			t.Fatalf("second: %v", err)
		}
		second := subs.byProfile[userID]
		if first.Plan != second.Plan || first.Status != second.Status || *first.SubscriptionID != *second.SubscriptionID {
			t.Fatalf("replay changed state: %+v vs %+v", first, second)
		}
	})
}

func TestHandleWebhook_InvalidSignatureMutatesNothing(t *testing.T) {
	subs := newFakeSubs()
	verifier := fakeVerifier{err: fmt.Errorf("%w: no valid signature", billing.ErrInvalidSignature)}
	uc := newBilling(subs, verifier, nil, newFakeGuard(), newFakeProfiles())

	err := uc.HandleWebhook(context.Background(), []byte(`{"type":"checkout.session.completed"}`), "t=1,v1=bad")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if subs.saves != 0 || len(subs.byProfile) != 0 {
		t.Fatalf("no mutation expected")
	}
}

func TestHandleWebhook_MalformedIsInvalidInput(t *testing.T) {
	verifier := fakeVerifier{err: fmt.Errorf("%w: bad json", billing.ErrMalformedEvent)}
	uc := newBilling(newFakeSubs(), verifier, nil, nil, newFakeProfiles())

	if err := uc.HandleWebhook(context.Background(), nil, "sig"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHandleWebhook_IgnoredEvents(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name string
		env  billing.Envelope
	}{
		{"unknown type", billing.Envelope{ID: "evt_1", Type: "invoice.paid"}},
		{"checkout without metadata", billing.Envelope{ID: "evt_2", Event: billing.CheckoutCompleted{SubscriptionID: "sub_x"}}},
		{"update for unknown subscription", billing.Envelope{ID: "evt_3", Event: billing.SubscriptionUpdated{
			SubscriptionID: "sub_unknown", UserID: userID, ProviderStatus: "active", Plan: billing.PlanGrowth,
		}}},
		{"update without owner", billing.Envelope{ID: "evt_4", Event: billing.SubscriptionUpdated{SubscriptionID: "sub_1"}}},
		{"delete for unknown subscription", billing.Envelope{ID: "evt_5", Event: billing.SubscriptionDeleted{SubscriptionID: "sub_unknown"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := newFakeSubs()
			uc := newBilling(subs, fakeVerifier{env: tt.env}, nil, newFakeGuard(), newFakeProfiles())
			if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
				t.Fatalf("expected acknowledgement, got %v", err)
			}
			if subs.saves != 0 {
				t.Fatalf("expected no writes, got %d", subs.saves)
			}
		})
	}
}

func TestHandleWebhook_UpdateAndDelete(t *testing.T) {
	userID := uuid.New()
	subID := "sub_1"
	subs := newFakeSubs(billing.Subscription{
		ProfileID: userID, Plan: billing.PlanStarter, Status: billing.StatusActive, SubscriptionID: &subID,
	})
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	update := billing.Envelope{ID: "evt_u", Event: billing.SubscriptionUpdated{
		SubscriptionID: subID, UserID: userID, ProviderStatus: "past_due", Plan: billing.PlanGrowth, PeriodEnd: &end,
	}}
	uc := newBilling(subs, fakeVerifier{env: update}, nil, newFakeGuard(), newFakeProfiles())
	if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := subs.byProfile[userID]
	if got.Status != billing.StatusPastDue || got.Plan != billing.PlanGrowth {
		t.Fatalf("unexpected state after update: %+v", got)
	}
	if got.CurrentPeriodEnd == nil || !got.CurrentPeriodEnd.Equal(end) {
		t.Fatalf("expected period end %v, got %v", end, got.CurrentPeriodEnd)
	}

	del := billing.Envelope{ID: "evt_d", Event: billing.SubscriptionDeleted{SubscriptionID: subID}}
	uc = newBilling(subs, fakeVerifier{env: del}, nil, newFakeGuard(), newFakeProfiles())
	if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got = subs.byProfile[userID]
	if got.Status != billing.StatusCancelled || got.Plan != billing.PlanFree {
		t.Fatalf("unexpected state after delete: %+v", got)
	}
}

func TestHandleWebhook_FailedDeliveryIsRetried(t *testing.T) {
	userID := uuid.New()
	guard := newFakeGuard()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	subs := newFakeSubs()
	subs.failSave = errors.New("db down")
	subs.beforeSave = cancel
	uc := newBilling(subs, fakeVerifier{env: checkoutEnvelope(userID)}, nil, guard, newFakeProfiles())

	if err := uc.HandleWebhook(ctx, nil, "sig"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if guard.keys["billing:event:evt_checkout"] {
		t.Fatalf("failed delivery must not be remembered")
	}

	subs.failSave = nil
	subs.beforeSave = nil
	if err := uc.HandleWebhook(context.Background(), nil, "sig"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := subs.byProfile[userID]; got.Plan != billing.PlanStarter || got.Status != billing.StatusActive {
		t.Fatalf("retry must apply the checkout, got %+v", got)
	}
	if !guard.keys["billing:event:evt_checkout"] {
		t.Fatalf("applied event must be remembered")
	}
}

func TestHandleWebhook_RemembersEventAfterCancelledRequest(t *testing.T) {
	guard := newFakeGuard()
	ctx, cancel := context.WithCancel(context.Background())
	subs := newFakeSubs()
	subs.beforeSave = cancel
	uc := newBilling(subs, fakeVerifier{env: checkoutEnvelope(uuid.New())}, nil, guard, newFakeProfiles())

	if err := uc.HandleWebhook(ctx, nil, "sig"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !guard.keys["billing:event:evt_checkout"] {
		t.Fatalf("expected event id recorded despite the cancelled request")
	}
}

func TestInitiateCheckout_CreatesCustomerOnce(t *testing.T) {
	caller := employer()
	profiles := newFakeProfiles(profile.Profile{ID: caller.ID, Email: "hr@acme.test", Role: profile.RoleEmployer})
	subs := newFakeSubs()
	provider := &fakeProvider{subs: subs}
	uc := newBilling(subs, nil, provider, nil, profiles)

	url, err := uc.InitiateCheckout(context.Background(), caller, "starter")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if url == "" {
		t.Fatalf("expected redirect url")
	}
	if !provider.persistedFirst {
		t.Fatalf("customer id must be stored before the session is created")
	}
	in := provider.lastCheckout
	if in.PriceID != "price_starter" || in.Currency != "cad" || in.Plan != billing.PlanStarter {
		t.Fatalf("unexpected checkout input: %+v", in)
	}
	if in.SuccessURL != "https://lynxhire.test/dashboard/employer/billing?success=true" {
		t.Fatalf("unexpected success url %q", in.SuccessURL)
	}

	if _, err := uc.InitiateCheckout(context.Background(), caller, "starter"); err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if provider.customers != 1 || subs.customerWrites != 1 {
		t.Fatalf("expected one customer, got %d created and %d writes", provider.customers, subs.customerWrites)
	}
}

func TestInitiateCheckout_Rejections(t *testing.T) {
	emp := employer()
	profiles := newFakeProfiles(profile.Profile{ID: emp.ID, Email: "hr@acme.test", Role: profile.RoleEmployer})

	tests := []struct {
		name   string
		caller profile.Caller
		plan   string
		want   error
	}{
		{"anonymous", profile.Caller{}, "starter", ErrUnauthorized},
		{"candidate", candidate(), "starter", ErrRoleForbidden},
		{"free plan", emp, "free", ErrInvalidPlan},
		{"unknown plan", emp, "enterprise", ErrInvalidPlan},
		{"missing price", emp, "growth", ErrNotConfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			uc := newBilling(newFakeSubs(), nil, provider, nil, profiles)
			if _, err := uc.InitiateCheckout(context.Background(), tt.caller, tt.plan); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if provider.customers != 0 {
				t.Fatalf("no customer expected")
			}
		})
	}
}

func TestOpenPortal_RequiresCustomer(t *testing.T) {
	caller := employer()
	subs := newFakeSubs()
	uc := newBilling(subs, nil, &fakeProvider{}, nil, newFakeProfiles())

	if _, err := uc.OpenPortal(context.Background(), caller); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cus := "cus_9"
	subs.byProfile[caller.ID] = billing.Subscription{ProfileID: caller.ID, Plan: billing.PlanStarter, CustomerID: &cus}
	url, err := uc.OpenPortal(context.Background(), caller)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if url != "https://billing.example/cus_9" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestGetSubscription_DefaultsToFree(t *testing.T) {
	caller := employer()
	uc := newBilling(newFakeSubs(), nil, nil, nil, newFakeProfiles())

	sub, err := uc.GetSubscription(context.Background(), caller)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sub.Plan != billing.PlanFree || sub.Status != billing.StatusActive {
		t.Fatalf("unexpected default: %+v", sub)
	}
}
