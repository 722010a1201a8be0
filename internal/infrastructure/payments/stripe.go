package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lynxhire/internal/domain/billing"
	"lynxhire/internal/usecase"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Metadata keys written on checkout sessions and subscriptions.
const (
	MetadataUserID = "supabase_user_id"
	MetadataPlan   = "plan"
)

// Stripe talks to the Stripe API. It is safe for concurrent use.
type Stripe struct {
	api *client.API
}

func NewStripe(secretKey string, timeout time.Duration) (*Stripe, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	backends := stripe.NewBackends(&http.Client{Timeout: timeout})
	return &Stripe{api: client.New(secretKey, backends)}, nil
}

func (s *Stripe) CreateCustomer(ctx context.Context, email string, profileID uuid.UUID) (string, error) {
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, profileID.String())

	c, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create customer: %w", err)
	}
	return c.ID, nil
}

func (s *Stripe) CreateCheckoutSession(ctx context.Context, in usecase.CheckoutSessionInput) (string, error) {
	currency := strings.ToLower(in.Currency)
	if currency == "" {
		currency = "cad"
	}
	metadata := map[string]string{
		MetadataUserID: in.ProfileID.String(),
		MetadataPlan:   string(in.Plan),
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(in.CustomerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(in.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create checkout session: %w", err)
	}
	if sess.URL == "" {
		return "", errors.New("stripe checkout session has no url")
	}
	return sess.URL, nil
}

func (s *Stripe) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create portal session: %w", err)
	}
	return sess.URL, nil
}

// WebhookVerifier checks the Stripe-Signature header against the endpoint
// secret and decodes the events the billing sync reacts to.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("stripe webhook secret is required")
	}
	return &WebhookVerifier{secret: secret, tolerance: webhook.DefaultTolerance}, nil
}

func (v *WebhookVerifier) Verify(payload []byte, signatureHeader string) (billing.Envelope, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return billing.Envelope{}, fmt.Errorf("%w: %v", billing.ErrInvalidSignature, err)
		}
		return billing.Envelope{}, fmt.Errorf("%w: %v", billing.ErrMalformedEvent, err)
	}

	env := billing.Envelope{ID: evt.ID, Type: string(evt.Type)}
	if evt.Data == nil {
		return env, nil
	}

	decoded, err := DecodeEvent(billing.Kind(evt.Type), evt.Data.Raw)
	if err != nil {
		return billing.Envelope{}, err
	}
	env.Event = decoded
	return env, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

type checkoutObject struct {
	Metadata     map[string]string `mapstructure:"metadata"`
	Customer     any               `mapstructure:"customer"`
	Subscription any               `mapstructure:"subscription"`
}

type subscriptionObject struct {
	ID               string            `mapstructure:"id"`
	Status           string            `mapstructure:"status"`
	Metadata         map[string]string `mapstructure:"metadata"`
	CurrentPeriodEnd int64             `mapstructure:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `mapstructure:"current_period_end"`
		} `mapstructure:"data"`
	} `mapstructure:"items"`
}

// DecodeEvent turns the raw data.object of a Stripe event into a billing
// event. Unknown kinds decode to nil.
func DecodeEvent(kind billing.Kind, raw json.RawMessage) (billing.Event, error) {
	switch kind {
	case billing.KindCheckoutCompleted:
		var obj checkoutObject
		if err := decodeObject(raw, &obj); err != nil {
			return nil, err
		}
		plan, _ := billing.ParsePlan(obj.Metadata[MetadataPlan])
		return billing.CheckoutCompleted{
			UserID:         parseUserID(obj.Metadata[MetadataUserID]),
			Plan:           plan,
			SubscriptionID: expandableID(obj.Subscription),
			CustomerID:     expandableID(obj.Customer),
		}, nil

	case billing.KindSubscriptionUpdated:
		var obj subscriptionObject
		if err := decodeObject(raw, &obj); err != nil {
			return nil, err
		}
		plan, _ := billing.ParsePlan(obj.Metadata[MetadataPlan])
		return billing.SubscriptionUpdated{
			SubscriptionID: obj.ID,
			UserID:         parseUserID(obj.Metadata[MetadataUserID]),
			ProviderStatus: obj.Status,
			PeriodEnd:      obj.periodEnd(),
			Plan:           plan,
		}, nil

	case billing.KindSubscriptionDeleted:
		var obj subscriptionObject
		if err := decodeObject(raw, &obj); err != nil {
			return nil, err
		}
		return billing.SubscriptionDeleted{SubscriptionID: obj.ID}, nil

	default:
		return nil, nil
	}
}

func decodeObject(raw json.RawMessage, out any) error {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrMalformedEvent, err)
	}
	if m == nil {
		return fmt.Errorf("%w: empty object", billing.ErrMalformedEvent)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrMalformedEvent, err)
	}
	return nil
}

// periodEnd prefers the top-level field and falls back to the first item,
// where newer API versions report it.
func (o subscriptionObject) periodEnd() *time.Time {
	ts := o.CurrentPeriodEnd
	if ts == 0 && len(o.Items.Data) > 0 {
		ts = o.Items.Data[0].CurrentPeriodEnd
	}
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

func expandableID(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any:
		if id, ok := x["id"].(string); ok {
			return id
		}
	}
	return ""
}

func parseUserID(raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil
	}
	return id
}
