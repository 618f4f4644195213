package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type RunRepo struct {
	pool *pgxpool.Pool
}

func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

func (r *RunRepo) Create(ctx context.Context, run *models.CampaignRun) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaign_runs (organization_id, campaign_id, status, leads_generated, credits_used)
		VALUES ($1, $2, $3, 0, 0)
		RETURNING id, started_at
	`, run.OrganizationID, run.CampaignID, run.Status).Scan(&run.ID, &run.StartedAt)
}

func (r *RunRepo) MarkCompleted(ctx context.Context, orgID, id uuid.UUID, leadsGenerated, creditsUsed int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_runs
		SET status = $1, leads_generated = $2, credits_used = $3, completed_at = now()
		WHERE id = $4 AND organization_id = $5
	`, models.RunStatusCompleted, leadsGenerated, creditsUsed, id, orgID)
	return err
}

func (r *RunRepo) MarkFailed(ctx context.Context, orgID, id uuid.UUID, leadsGenerated, creditsUsed int, errMsg string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_runs
		SET status = $1, leads_generated = $2, credits_used = $3, error_message = $4, completed_at = now()
		WHERE id = $5 AND organization_id = $6
	`, models.RunStatusFailed, leadsGenerated, creditsUsed, errMsg, id, orgID)
	return err
}

func (r *RunRepo) ListByCampaign(ctx context.Context, orgID, campaignID uuid.UUID) ([]models.CampaignRun, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, campaign_id, status, leads_generated, credits_used,
		       error_message, started_at, completed_at
		FROM campaign_runs
		WHERE campaign_id = $1 AND organization_id = $2
		ORDER BY started_at DESC
	`, campaignID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.CampaignRun
	for rows.Next() {
		var run models.CampaignRun
		if err := rows.Scan(&run.ID, &run.OrganizationID, &run.CampaignID, &run.Status,
			&run.LeadsGenerated, &run.CreditsUsed, &run.ErrorMessage,
			&run.StartedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetStuckRuns returns runs still marked running after the given age.
// A crashed process can leave a run behind; the worker sweeps them.
func (r *RunRepo) GetStuckRuns(ctx context.Context, olderThan time.Duration) ([]models.CampaignRun, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, campaign_id, status, leads_generated, credits_used,
		       error_message, started_at, completed_at
		FROM campaign_runs
		WHERE status = $1 AND started_at < now() - $2::interval
	`, models.RunStatusRunning, olderThan.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.CampaignRun
	for rows.Next() {
		var run models.CampaignRun
		if err := rows.Scan(&run.ID, &run.OrganizationID, &run.CampaignID, &run.Status,
			&run.LeadsGenerated, &run.CreditsUsed, &run.ErrorMessage,
			&run.StartedAt, &run.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
