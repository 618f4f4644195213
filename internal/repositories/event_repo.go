package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectr/backend/internal/models"
)

// EventRepo is the append-only lead audit trail. No update or delete
// operations exist on purpose.
type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) Append(ctx context.Context, e *models.LeadEvent) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO lead_events (lead_id, event_type, metadata)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, e.LeadID, e.EventType, e.Metadata).Scan(&e.ID, &e.CreatedAt)
}

func (r *EventRepo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]models.LeadEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, event_type, metadata, created_at
		FROM lead_events WHERE lead_id = $1
		ORDER BY created_at ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.LeadEvent
	for rows.Next() {
		var e models.LeadEvent
		if err := rows.Scan(&e.ID, &e.LeadID, &e.EventType, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
