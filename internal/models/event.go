package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead event types. Events are append-only: emitted once after each
// successful pipeline stage, never mutated or deleted.
const (
	LeadEventSourced           = "sourced"
	LeadEventEnriched          = "enriched"
	LeadEventOutreachGenerated = "outreach_generated"
	LeadEventAnalyzed          = "analyzed"
	LeadEventStatusChanged     = "status_changed"
)

type LeadEvent struct {
	ID        uuid.UUID      `json:"id"`
	LeadID    uuid.UUID      `json:"lead_id"`
	EventType string         `json:"event_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
