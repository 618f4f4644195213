package models

import (
	"time"

	"github.com/google/uuid"
)

// OutreachDraft is one generated email per lead per run. Score mirrors
// the lead's score once analysis completes; both are written from the
// same analysis result.
type OutreachDraft struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	LeadID         uuid.UUID `json:"lead_id"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Variant        string    `json:"variant"`
	Score          *int      `json:"score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
