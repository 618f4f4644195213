package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type LeadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `id, organization_id, campaign_id, company_name, company_size, industry,
	role, name, email, linkedin_url, location, enriched_data, score, status, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	var l models.Lead
	err := row.Scan(&l.ID, &l.OrganizationID, &l.CampaignID, &l.CompanyName, &l.CompanySize,
		&l.Industry, &l.Role, &l.Name, &l.Email, &l.LinkedinURL, &l.Location,
		&l.EnrichedData, &l.Score, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepo) Create(ctx context.Context, l *models.Lead) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO leads (organization_id, campaign_id, company_name, company_size, industry,
			role, name, email, linkedin_url, location, enriched_data, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, l.OrganizationID, l.CampaignID, l.CompanyName, l.CompanySize, l.Industry,
		l.Role, l.Name, l.Email, l.LinkedinURL, l.Location, l.EnrichedData, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *LeadRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Lead, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1 AND organization_id = $2`, id, orgID)
	return scanLead(row)
}

func (r *LeadRepo) ListByCampaign(ctx context.Context, orgID, campaignID uuid.UUID) ([]models.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE campaign_id = $1 AND organization_id = $2
		ORDER BY score DESC NULLS LAST, created_at DESC
	`, campaignID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func (r *LeadRepo) UpdateScore(ctx context.Context, orgID, id uuid.UUID, score int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET score = $1, updated_at = now()
		WHERE id = $2 AND organization_id = $3
	`, score, id, orgID)
	return err
}

func (r *LeadRepo) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET status = $1, updated_at = now()
		WHERE id = $2 AND organization_id = $3
	`, status, id, orgID)
	return err
}

// UpdateEnrichedData merges keys into the enrichment blob, used by the
// website snapshot backfill job. Existing keys outside the update are
// preserved.
func (r *LeadRepo) UpdateEnrichedData(ctx context.Context, orgID, id uuid.UUID, data map[string]any) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET enriched_data = enriched_data || $1, updated_at = now()
		WHERE id = $2 AND organization_id = $3
	`, data, id, orgID)
	return err
}

// ListMissingWebsiteSnapshot returns leads that carry a company website
// in their enrichment data but no fetched snapshot yet.
func (r *LeadRepo) ListMissingWebsiteSnapshot(ctx context.Context, limit int) ([]models.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE enriched_data ? 'company_website'
		  AND NOT enriched_data ? 'website_title'
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}
