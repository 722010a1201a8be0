package payments

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"lynxhire/internal/domain/billing"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79/webhook"
)

const testSecret = "whsec_test_secret"

func signed(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return sp.Header, sp.Payload
}

func newVerifier(t *testing.T) *WebhookVerifier {
	t.Helper()
	v, err := NewWebhookVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewWebhookVerifier: %v", err)
	}
	return v
}

func TestVerify_CheckoutCompleted(t *testing.T) {
	userID := uuid.New()
	payload := fmt.Sprintf(`{
		"id": "evt_checkout",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"customer": "cus_1",
			"subscription": "sub_1",
			"metadata": {"supabase_user_id": %q, "plan": "growth"}
		}}
	}`, userID)

	header, body := signed(t, payload)
	env, err := newVerifier(t).Verify(body, header)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if env.ID != "evt_checkout" || env.Type != "checkout.session.completed" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	evt, ok := env.Event.(billing.CheckoutCompleted)
	if !ok {
		t.Fatalf("expected CheckoutCompleted, got %T", env.Event)
	}
	if evt.UserID != userID || evt.Plan != billing.PlanGrowth || evt.SubscriptionID != "sub_1" || evt.CustomerID != "cus_1" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestVerify_TamperedBodyRejected(t *testing.T) {
	header, _ := signed(t, `{"id":"evt_1","object":"event","type":"customer.subscription.deleted","data":{"object":{"id":"sub_1"}}}`)
	tampered := []byte(`{"id":"evt_1","object":"event","type":"customer.subscription.deleted","data":{"object":{"id":"sub_2"}}}`)

	_, err := newVerifier(t).Verify(tampered, header)
	if !errors.Is(err, billing.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_MissingHeaderRejected(t *testing.T) {
	_, err := newVerifier(t).Verify([]byte(`{}`), "")
	if !errors.Is(err, billing.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_UnknownTypeAcknowledged(t *testing.T) {
	header, body := signed(t, `{"id":"evt_2","object":"event","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)

	env, err := newVerifier(t).Verify(body, header)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if env.Event != nil {
		t.Fatalf("expected nil event for unknown type, got %T", env.Event)
	}
}

func TestDecodeEvent_SubscriptionUpdatedPeriodEndFromItems(t *testing.T) {
	userID := uuid.New()
	raw := []byte(fmt.Sprintf(`{
		"id": "sub_9",
		"status": "past_due",
		"metadata": {"supabase_user_id": %q, "plan": "starter"},
		"items": {"data": [{"current_period_end": 1767225600}]}
	}`, userID))

	evt, err := DecodeEvent(billing.KindSubscriptionUpdated, raw)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	up := evt.(billing.SubscriptionUpdated)
	if up.SubscriptionID != "sub_9" || up.ProviderStatus != "past_due" || up.Plan != billing.PlanStarter || up.UserID != userID {
		t.Fatalf("unexpected event %+v", up)
	}
	if up.PeriodEnd == nil || !up.PeriodEnd.Equal(time.Unix(1767225600, 0)) {
		t.Fatalf("unexpected period end %v", up.PeriodEnd)
	}
}

func TestDecodeEvent_SubscriptionUpdatedWithoutPeriodEnd(t *testing.T) {
	evt, err := DecodeEvent(billing.KindSubscriptionUpdated, []byte(`{"id":"sub_1","status":"active"}`))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	up := evt.(billing.SubscriptionUpdated)
	if up.PeriodEnd != nil {
		t.Fatalf("expected no period end, got %v", up.PeriodEnd)
	}
	if up.Actionable() {
		t.Fatalf("update without user metadata must not be actionable")
	}
}

func TestDecodeEvent_ExpandedCheckoutReferences(t *testing.T) {
	raw := []byte(`{"customer":{"id":"cus_x"},"subscription":{"id":"sub_x"},"metadata":{"supabase_user_id":"nope","plan":"gold"}}`)

	evt, err := DecodeEvent(billing.KindCheckoutCompleted, raw)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	co := evt.(billing.CheckoutCompleted)
	if co.CustomerID != "cus_x" || co.SubscriptionID != "sub_x" {
		t.Fatalf("unexpected ids %+v", co)
	}
	if co.Actionable() {
		t.Fatalf("invalid user id and plan must not be actionable")
	}
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := DecodeEvent(billing.KindSubscriptionDeleted, []byte(`"just a string"`))
	if !errors.Is(err, billing.ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
	_, err = DecodeEvent(billing.KindSubscriptionUpdated, []byte(`{"id": 12, "status": ["x"]}`))
	if !errors.Is(err, billing.ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent for bad field types, got %v", err)
	}
}
