package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

func (r *SubscriptionRepo) GetByOrg(ctx context.Context, orgID uuid.UUID) (*models.Subscription, error) {
	var s models.Subscription
	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, plan, status, monthly_credits, credits_used, credits_reset_at, created_at, updated_at
		FROM subscriptions WHERE organization_id = $1
	`, orgID).Scan(&s.ID, &s.OrganizationID, &s.Plan, &s.Status, &s.MonthlyCredits,
		&s.CreditsUsed, &s.CreditsResetAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ResetUsage zeroes the monthly counter and advances the reset point.
func (r *SubscriptionRepo) ResetUsage(ctx context.Context, orgID uuid.UUID, nextReset time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subscriptions SET credits_used = 0, credits_reset_at = $1, updated_at = now()
		WHERE organization_id = $2
	`, nextReset, orgID)
	return err
}

// ConsumeCredits increments credits_used by amount only when enough
// budget remains. The single conditional UPDATE keeps the check and the
// increment atomic under concurrent consumers for the same tenant.
func (r *SubscriptionRepo) ConsumeCredits(ctx context.Context, orgID uuid.UUID, amount int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET credits_used = credits_used + $1, updated_at = now()
		WHERE organization_id = $2 AND monthly_credits - credits_used >= $1
	`, amount, orgID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListDueForRollover returns subscriptions whose monthly window has
// lapsed, for the worker sweep.
func (r *SubscriptionRepo) ListDueForRollover(ctx context.Context) ([]models.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, plan, status, monthly_credits, credits_used, credits_reset_at, created_at, updated_at
		FROM subscriptions WHERE credits_reset_at < now()
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Plan, &s.Status, &s.MonthlyCredits,
			&s.CreditsUsed, &s.CreditsResetAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
