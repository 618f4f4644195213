package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (organization_id, name, icp_config, messaging_tone, goal, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.OrganizationID, c.Name, c.ICPConfig, c.MessagingTone, c.Goal, c.Status, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, icp_config, messaging_tone, goal, status, created_by, created_at, updated_at
		FROM campaigns WHERE id = $1 AND organization_id = $2
	`, id, orgID).Scan(&c.ID, &c.OrganizationID, &c.Name, &c.ICPConfig, &c.MessagingTone,
		&c.Goal, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type CampaignFilter struct {
	Status string
	Limit  int
	Offset int
}

func (r *CampaignRepo) List(ctx context.Context, orgID uuid.UUID, f CampaignFilter) ([]models.Campaign, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, name, icp_config, messaging_tone, goal, status, created_by, created_at, updated_at
		FROM campaigns
		WHERE organization_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, orgID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.ICPConfig, &c.MessagingTone,
			&c.Goal, &c.Status, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns
		SET name = $1, icp_config = $2, messaging_tone = $3, goal = $4, status = $5, updated_at = now()
		WHERE id = $6 AND organization_id = $7
	`, c.Name, c.ICPConfig, c.MessagingTone, c.Goal, c.Status, c.ID, c.OrganizationID)
	return err
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, orgID, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now()
		WHERE id = $2 AND organization_id = $3
	`, status, id, orgID)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1 AND organization_id = $2`, id, orgID)
	return err
}
