package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prospectr/backend/internal/ai"
	"github.com/prospectr/backend/internal/models"
	"go.uber.org/zap"
)

// Analysis is the scored assessment of a lead and its draft. Score is
// always within [0,100].
type Analysis struct {
	Score       int      `json:"score"`
	Reasoning   string   `json:"reasoning"`
	Suggestions []string `json:"suggestions"`
	NextSteps   []string `json:"next_steps"`
}

type AnalysisInput struct {
	Lead  *models.Lead
	Draft DraftContent
	ICP   models.ICPConfig
	Goal  string
}

type AnalysisAgent struct {
	ai  Completer
	log *zap.Logger
}

func NewAnalysisAgent(completer Completer, log *zap.Logger) *AnalysisAgent {
	return &AnalysisAgent{ai: completer, log: log}
}

func (a *AnalysisAgent) AnalyzeLead(ctx context.Context, in AnalysisInput) (Analysis, error) {
	lead := in.Lead

	prompt := fmt.Sprintf(`You are a lead scoring and analysis expert. Analyze this lead and outreach draft:

Lead:
- Name: %s
- Role: %s
- Company: %s
- Company Size: %s
- Industry: %s
- Location: %s
- Email: %s
- LinkedIn: %s

ICP Match:
- Target Industry: %s
- Target Company Size: %s
- Target Role: %s
- Target Geography: %s

Outreach Draft:
Subject: %s
Body: %s

Campaign Goal: %s

Provide:
1. A quality score (0-100) based on:
   - ICP match quality
   - Data completeness (email, LinkedIn, etc.)
   - Company fit
   - Role relevance
   - Outreach draft quality

2. Brief reasoning for the score

3. 2-3 suggestions to improve the lead or outreach

4. 2-3 recommended next steps

Return ONLY a valid JSON object with this structure:
{
  "score": 85,
  "reasoning": "Strong ICP match with complete data...",
  "suggestions": ["Add more personalization", "Include specific company mention"],
  "next_steps": ["Send follow-up in 3 days", "Connect on LinkedIn"]
}

Do not include any markdown formatting or explanations, just the JSON object.`,
		lead.Name, lead.Role, lead.CompanyName,
		strOr(lead.CompanySize, "Unknown"), strOr(lead.Industry, "Unknown"), strOr(lead.Location, "Unknown"),
		strOr(lead.Email, "Not found"), strOr(lead.LinkedinURL, "Not found"),
		in.ICP.Industry, in.ICP.CompanySize, in.ICP.Role, in.ICP.Geography,
		in.Draft.Subject, in.Draft.Body, in.Goal)

	response, err := a.ai.Complete(ctx, []ai.Message{
		{Role: "system", Content: "You are a lead scoring expert. Analyze leads and provide actionable insights. Always return valid JSON objects."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return Analysis{}, err
	}

	// Score decodes through a pointer so a missing field falls back to
	// 50 while an out-of-range value is clamped, not replaced.
	var raw struct {
		Score       *float64 `json:"score"`
		Reasoning   string   `json:"reasoning"`
		Suggestions []string `json:"suggestions"`
		NextSteps   []string `json:"next_steps"`
	}
	if err := json.Unmarshal([]byte(stripFences(response)), &raw); err != nil {
		a.log.Warn("failed to parse analysis response, using fallback",
			zap.String("company", lead.CompanyName), zap.Error(err))
		return fallbackAnalysis(), nil
	}

	result := Analysis{
		Score:       clampScore(raw.Score),
		Reasoning:   raw.Reasoning,
		Suggestions: raw.Suggestions,
		NextSteps:   raw.NextSteps,
	}
	if result.Reasoning == "" {
		result.Reasoning = "Analysis completed"
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if result.NextSteps == nil {
		result.NextSteps = []string{}
	}
	return result, nil
}

func fallbackAnalysis() Analysis {
	return Analysis{
		Score:       50,
		Reasoning:   "Analysis completed with default scoring",
		Suggestions: []string{"Review lead data", "Personalize outreach"},
		NextSteps:   []string{"Send email", "Follow up"},
	}
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
