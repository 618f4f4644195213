package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type DraftRepo struct {
	pool *pgxpool.Pool
}

func NewDraftRepo(pool *pgxpool.Pool) *DraftRepo {
	return &DraftRepo{pool: pool}
}

func (r *DraftRepo) Create(ctx context.Context, d *models.OutreachDraft) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO outreach_drafts (organization_id, lead_id, subject, body, variant)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, d.OrganizationID, d.LeadID, d.Subject, d.Body, d.Variant).Scan(&d.ID, &d.CreatedAt)
}

func (r *DraftRepo) ListByLead(ctx context.Context, orgID, leadID uuid.UUID) ([]models.OutreachDraft, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, lead_id, subject, body, variant, score, created_at
		FROM outreach_drafts
		WHERE lead_id = $1 AND organization_id = $2
		ORDER BY created_at DESC
	`, leadID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.OutreachDraft
	for rows.Next() {
		var d models.OutreachDraft
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.LeadID, &d.Subject, &d.Body,
			&d.Variant, &d.Score, &d.CreatedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (r *DraftRepo) UpdateScore(ctx context.Context, orgID, id uuid.UUID, score int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE outreach_drafts SET score = $1
		WHERE id = $2 AND organization_id = $3
	`, score, id, orgID)
	return err
}
