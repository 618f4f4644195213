package dto

import "github.com/prospectr/backend/internal/models"

type AuthTokenRequest struct {
	APIKey string `json:"api_key"`
}

type CreateCampaignRequest struct {
	Name          string           `json:"name"`
	ICPConfig     models.ICPConfig `json:"icp_config"`
	MessagingTone string           `json:"messaging_tone"`
	Goal          string           `json:"goal"`
}

type UpdateCampaignRequest struct {
	Name          string           `json:"name"`
	ICPConfig     models.ICPConfig `json:"icp_config"`
	MessagingTone string           `json:"messaging_tone"`
	Goal          string           `json:"goal"`
	Status        string           `json:"status"`
}

type RunCampaignRequest struct {
	LeadCount int `json:"lead_count"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}
