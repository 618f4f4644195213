package models

import (
	"time"

	"github.com/google/uuid"
)

// SourcedCandidate is the raw output of the sourcing stage. It is never
// persisted on its own: a candidate becomes a Lead only after enrichment
// succeeds.
type SourcedCandidate struct {
	CompanyName string `json:"company_name"`
	CompanySize string `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
}

// EnrichmentData is the enrichment stage output, stored as-is in
// leads.enriched_data.
type EnrichmentData struct {
	Email              string   `json:"email,omitempty"`
	LinkedinURL        string   `json:"linkedin_url,omitempty"`
	CompanyWebsite     string   `json:"company_website,omitempty"`
	CompanyDescription string   `json:"company_description,omitempty"`
	EmployeeCount      string   `json:"employee_count,omitempty"`
	FundingStage       string   `json:"funding_stage,omitempty"`
	Technologies       []string `json:"technologies,omitempty"`
	RecentNews         []string `json:"recent_news,omitempty"`
}

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusResponded = "responded"
	LeadStatusQualified = "qualified"
	LeadStatusRejected  = "rejected"
)

var ValidLeadTransitions = map[string][]string{
	LeadStatusNew:       {LeadStatusContacted, LeadStatusRejected},
	LeadStatusContacted: {LeadStatusResponded, LeadStatusRejected},
	LeadStatusResponded: {LeadStatusQualified, LeadStatusRejected},
	LeadStatusQualified: {},
	LeadStatusRejected:  {},
}

func IsValidLeadTransition(from, to string) bool {
	for _, s := range ValidLeadTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Lead struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	CampaignID     uuid.UUID      `json:"campaign_id"`
	CompanyName    string         `json:"company_name"`
	CompanySize    *string        `json:"company_size,omitempty"`
	Industry       *string        `json:"industry,omitempty"`
	Role           string         `json:"role"`
	Name           string         `json:"name"`
	Email          *string        `json:"email,omitempty"`
	LinkedinURL    *string        `json:"linkedin_url,omitempty"`
	Location       *string        `json:"location,omitempty"`
	EnrichedData   map[string]any `json:"enriched_data,omitempty"`
	Score          *int           `json:"score,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
