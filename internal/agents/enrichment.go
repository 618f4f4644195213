package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prospectr/backend/internal/ai"
	"github.com/prospectr/backend/internal/models"
	"go.uber.org/zap"
)

// EnrichmentAgent fills in contact and company data for a sourced
// candidate.
type EnrichmentAgent struct {
	ai  Completer
	log *zap.Logger
}

func NewEnrichmentAgent(completer Completer, log *zap.Logger) *EnrichmentAgent {
	return &EnrichmentAgent{ai: completer, log: log}
}

func (a *EnrichmentAgent) EnrichLead(ctx context.Context, cand models.SourcedCandidate) (models.EnrichmentData, error) {
	prompt := fmt.Sprintf(`You are a lead enrichment agent. Enrich this lead with additional data:

Company: %s
Company Size: %s
Industry: %s
Role: %s
Name: %s
Location: %s

Generate realistic enrichment data including:
- Email address (format: firstname.lastname@company.com or similar patterns)
- LinkedIn URL (format: linkedin.com/in/firstname-lastname)
- Company website (format: www.companyname.com)
- Company description (1-2 sentences)
- Employee count (if not provided)
- Funding stage (if applicable)
- Technologies used (array of 3-5 technologies)
- Recent news (array of 2-3 recent company news items)

Return ONLY a valid JSON object with this structure:
{
  "email": "john.doe@example.com",
  "linkedin_url": "https://linkedin.com/in/john-doe",
  "company_website": "https://www.example.com",
  "company_description": "Example Corp is a leading...",
  "employee_count": "150",
  "funding_stage": "Series B",
  "technologies": ["React", "Node.js", "AWS"],
  "recent_news": ["Raised $10M Series B", "Launched new product"]
}

Do not include any markdown formatting or explanations, just the JSON object.`,
		cand.CompanyName, orUnknown(cand.CompanySize), orUnknown(cand.Industry),
		cand.Role, cand.Name, orUnknown(cand.Location))

	response, err := a.ai.Complete(ctx, []ai.Message{
		{Role: "system", Content: "You are a lead enrichment expert. Generate realistic enrichment data. Always return valid JSON objects."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return models.EnrichmentData{}, err
	}

	var enrichment models.EnrichmentData
	if err := json.Unmarshal([]byte(stripFences(response)), &enrichment); err != nil {
		a.log.Warn("failed to parse enrichment response, using fallback",
			zap.String("company", cand.CompanyName), zap.Error(err))
		return models.EnrichmentData{Email: FallbackEmail(cand.Name, cand.CompanyName)}, nil
	}
	return enrichment, nil
}

// FallbackEmail derives a best-effort address from the person and
// company names. Deterministic, no network.
func FallbackEmail(name, company string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	domain := strings.Join(strings.Fields(strings.ToLower(company)), "")
	return fmt.Sprintf("%s@%s.com", local, domain)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
