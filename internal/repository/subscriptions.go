package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adpulse/opensea-api/internal/entity"
)

// ErrSubscriptionNotFound is returned when a user has no subscription row.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionsRepository manages billing state for users.
type SubscriptionsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error)
	Upsert(ctx context.Context, sub *entity.Subscription) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error
	IncrementSearchCount(ctx context.Context, userID uuid.UUID) error
	ResetUsage(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error
}

// PGXSubscriptionsRepository implements SubscriptionsRepository with pgx.
type PGXSubscriptionsRepository struct {
	pool pgxPool
}

// NewPGXSubscriptionsRepository instantiates a subscriptions repository.
func NewPGXSubscriptionsRepository(pool *pgxpool.Pool) *PGXSubscriptionsRepository {
	return &PGXSubscriptionsRepository{pool: pool}
}

const subscriptionColumns = `id, user_id, plan, status, search_count, period_start, period_end, created_at, updated_at`

// GetByUserID fetches the subscription row for a user.
func (r *PGXSubscriptionsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID)

	var sub entity.Subscription
	err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status, &sub.SearchCount,
		&sub.PeriodStart, &sub.PeriodEnd, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("query subscription: %w", err)
	}

	return &sub, nil
}

// Upsert creates or replaces the billing state for a user. Called by the
// billing webhook handler.
func (r *PGXSubscriptionsRepository) Upsert(ctx context.Context, sub *entity.Subscription) error {
	if sub == nil {
		return fmt.Errorf("subscription payload is nil")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO subscriptions (user_id, plan, status, search_count, period_start, period_end, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            plan = EXCLUDED.plan,
            status = EXCLUDED.status,
            search_count = EXCLUDED.search_count,
            period_start = EXCLUDED.period_start,
            period_end = EXCLUDED.period_end,
            updated_at = NOW();
    `, sub.UserID, sub.Plan, sub.Status, sub.SearchCount, sub.PeriodStart, sub.PeriodEnd)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

// UpdateStatus moves the subscription to a new status.
func (r *PGXSubscriptionsRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE user_id = $2`, status, userID)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// IncrementSearchCount bumps the usage counter after a successful search.
func (r *PGXSubscriptionsRepository) IncrementSearchCount(ctx context.Context, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE subscriptions SET search_count = search_count + 1, updated_at = NOW() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("increment search count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// ResetUsage zeroes the counter and opens a new billing period.
func (r *PGXSubscriptionsRepository) ResetUsage(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE subscriptions
        SET search_count = 0, period_start = $1, period_end = $2, updated_at = NOW()
        WHERE user_id = $3
    `, periodStart, periodEnd, userID)
	if err != nil {
		return fmt.Errorf("reset subscription usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
