package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (organization_id, actor_user_id, actor_type, action, entity_type, entity_id, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.OrganizationID, entry.ActorUserID, entry.ActorType, entry.Action,
		entry.EntityType, entry.EntityID, entry.Meta)
	return err
}
