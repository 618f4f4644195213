package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ICPConfig is the ideal-customer-profile targeting criteria for a campaign.
// Validated once when a campaign is created, then passed by value through
// the pipeline.
type ICPConfig struct {
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Role        string `json:"role"`
	Geography   string `json:"geography"`
}

func (c ICPConfig) Validate() error {
	if c.Industry == "" || c.CompanySize == "" || c.Role == "" || c.Geography == "" {
		return fmt.Errorf("icp_config requires industry, company_size, role and geography")
	}
	return nil
}

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
	CampaignStatusPaused    = "paused"
)

// ValidCampaignTransitions: running is entered and left only by the
// orchestrator; a failed run drops the campaign back to draft so it can
// be retried.
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusRunning, CampaignStatusPaused},
	CampaignStatusRunning:   {CampaignStatusCompleted, CampaignStatusDraft},
	CampaignStatusCompleted: {CampaignStatusDraft, CampaignStatusRunning, CampaignStatusPaused},
	CampaignStatusPaused:    {CampaignStatusDraft},
}

func IsValidCampaignTransition(from, to string) bool {
	for _, s := range ValidCampaignTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Campaign struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	ICPConfig      ICPConfig `json:"icp_config"`
	MessagingTone  string    `json:"messaging_tone"`
	Goal           string    `json:"goal"`
	Status         string    `json:"status"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
