package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records user/system actions (campaign CRUD, run triggers).
// Pipeline stage history lives in lead_events instead.
type AuditLog struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	ActorUserID    *uuid.UUID `json:"actor_user_id,omitempty"`
	ActorType      string     `json:"actor_type"` // user/system/worker
	Action         string     `json:"action"`
	EntityType     string     `json:"entity_type"`
	EntityID       *uuid.UUID `json:"entity_id,omitempty"`
	Meta           any        `json:"meta,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
