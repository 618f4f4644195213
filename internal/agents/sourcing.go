package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prospectr/backend/internal/ai"
	"github.com/prospectr/backend/internal/models"
	"go.uber.org/zap"
)

// SourcingAgent generates candidate contacts matching an ICP. A real
// deployment would query data providers (Apollo, Clearbit); here the
// model is the provider.
type SourcingAgent struct {
	ai  Completer
	log *zap.Logger
}

func NewSourcingAgent(completer Completer, log *zap.Logger) *SourcingAgent {
	return &SourcingAgent{ai: completer, log: log}
}

// SourceLeads returns up to count candidates. A transport failure is
// returned to the caller (it fails the whole run); an unparseable
// response degrades to an empty batch.
func (a *SourcingAgent) SourceLeads(ctx context.Context, icp models.ICPConfig, count int) ([]models.SourcedCandidate, error) {
	prompt := fmt.Sprintf(`You are a lead sourcing agent. Generate %d potential leads based on this Ideal Customer Profile (ICP):

Industry: %s
Company Size: %s
Target Role: %s
Geography: %s

For each lead, provide:
- Company name (real or realistic company names)
- Company size (if available)
- Industry (if different from ICP)
- Role/title
- Person's name (realistic names)
- Location (city, country)

Return ONLY a valid JSON array with this structure:
[
  {
    "company_name": "Example Corp",
    "company_size": "50-200",
    "industry": "Technology",
    "role": "VP of Engineering",
    "name": "John Doe",
    "location": "San Francisco, USA"
  }
]

Do not include any markdown formatting or explanations, just the JSON array.`,
		count, icp.Industry, icp.CompanySize, icp.Role, icp.Geography)

	response, err := a.ai.Complete(ctx, []ai.Message{
		{Role: "system", Content: "You are a lead sourcing expert. Generate realistic leads based on ICP criteria. Always return valid JSON arrays."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	var candidates []models.SourcedCandidate
	if err := json.Unmarshal([]byte(stripFences(response)), &candidates); err != nil {
		a.log.Warn("failed to parse sourcing response, returning empty batch", zap.Error(err))
		return nil, nil
	}
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}
