package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CampaignRun records one end-to-end pipeline execution. Mutated only by
// the orchestrator and terminal once completed/failed.
type CampaignRun struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	Status         string     `json:"status"`
	LeadsGenerated int        `json:"leads_generated"`
	CreditsUsed    int        `json:"credits_used"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
