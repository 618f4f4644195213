package models

import "testing"

func TestIsValidCampaignTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{CampaignStatusDraft, CampaignStatusRunning, true},
		{CampaignStatusRunning, CampaignStatusCompleted, true},
		// Failed run reverts to draft for retry
		{CampaignStatusRunning, CampaignStatusDraft, true},
		// Completed campaigns can be re-run
		{CampaignStatusCompleted, CampaignStatusRunning, true},
		{CampaignStatusDraft, CampaignStatusPaused, true},
		{CampaignStatusPaused, CampaignStatusDraft, true},

		{CampaignStatusDraft, CampaignStatusCompleted, false},
		{CampaignStatusPaused, CampaignStatusRunning, false},
		{CampaignStatusRunning, CampaignStatusPaused, false},
		{"nonexistent", CampaignStatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidCampaignTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidCampaignTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestICPConfigValidate(t *testing.T) {
	valid := ICPConfig{Industry: "Technology", CompanySize: "50-200", Role: "CTO", Geography: "US"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	missing := []ICPConfig{
		{CompanySize: "50-200", Role: "CTO", Geography: "US"},
		{Industry: "Technology", Role: "CTO", Geography: "US"},
		{Industry: "Technology", CompanySize: "50-200", Geography: "US"},
		{Industry: "Technology", CompanySize: "50-200", Role: "CTO"},
	}
	for i, cfg := range missing {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, cfg)
		}
	}
}
