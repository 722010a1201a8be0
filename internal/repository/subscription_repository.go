package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/billing"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (billing.Subscription, error)
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (billing.Subscription, error)
	// Save overwrites the row keyed by profile id with the given state.
	Save(ctx context.Context, s billing.Subscription) error
	SetCustomerID(ctx context.Context, profileID uuid.UUID, customerID string) error
}

type PostgresSubscriptionRepository struct {
	db database.DB
}

func NewPostgresSubscriptionRepository(db database.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

const subscriptionColumns = `profile_id, plan, status, stripe_customer_id, stripe_subscription_id, current_period_end`

func scanSubscription(row database.Row) (billing.Subscription, error) {
	var s billing.Subscription
	var plan, status string
	if err := row.Scan(&s.ProfileID, &plan, &status, &s.CustomerID, &s.SubscriptionID, &s.CurrentPeriodEnd); err != nil {
		if database.IsNoRows(err) {
			return billing.Subscription{}, ErrNotFound
		}
		return billing.Subscription{}, err
	}
	s.Plan = billing.Plan(plan)
	s.Status = billing.Status(status)
	return s, nil
}

func (r *PostgresSubscriptionRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (billing.Subscription, error) {
	return scanSubscription(r.db.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE profile_id = $1`, profileID))
}

func (r *PostgresSubscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (billing.Subscription, error) {
	return scanSubscription(r.db.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE stripe_subscription_id = $1`, subscriptionID))
}

func (r *PostgresSubscriptionRepository) Save(ctx context.Context, s billing.Subscription) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (profile_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = now()`,
		s.ProfileID, string(s.Plan), string(s.Status), s.CustomerID, s.SubscriptionID, s.CurrentPeriodEnd,
	)
	return err
}

func (r *PostgresSubscriptionRepository) SetCustomerID(ctx context.Context, profileID uuid.UUID, customerID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscriptions (profile_id, stripe_customer_id) VALUES ($1, $2)
		 ON CONFLICT (profile_id) DO UPDATE SET stripe_customer_id = EXCLUDED.stripe_customer_id, updated_at = now()`,
		profileID, customerID,
	)
	return err
}
