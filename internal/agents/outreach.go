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

// DraftContent is the generated outreach email before persistence.
type DraftContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Variant string `json:"variant,omitempty"`
}

// OutreachInput carries everything the outreach prompt personalizes on.
type OutreachInput struct {
	Lead          *models.Lead
	ICP           models.ICPConfig
	MessagingTone string
	Goal          string
}

type OutreachAgent struct {
	ai  Completer
	log *zap.Logger
}

func NewOutreachAgent(completer Completer, log *zap.Logger) *OutreachAgent {
	return &OutreachAgent{ai: completer, log: log}
}

func (a *OutreachAgent) GenerateDraft(ctx context.Context, in OutreachInput) (DraftContent, error) {
	lead := in.Lead

	industry := in.ICP.Industry
	if lead.Industry != nil && *lead.Industry != "" {
		industry = *lead.Industry
	}
	location := in.ICP.Geography
	if lead.Location != nil && *lead.Location != "" {
		location = *lead.Location
	}

	enrichedContext := "None"
	if len(lead.EnrichedData) > 0 {
		if b, err := json.MarshalIndent(lead.EnrichedData, "", "  "); err == nil {
			enrichedContext = string(b)
		}
	}

	prompt := fmt.Sprintf(`You are a cold outreach email expert. Write a personalized cold email with these requirements:

Recipient: %s, %s at %s
Company Industry: %s
Location: %s
Messaging Tone: %s
Campaign Goal: %s

Additional Context:
%s

Requirements:
- Subject line should be compelling and personalized (max 60 characters)
- Email body should be concise (3-4 paragraphs max)
- Personalize based on company, role, and any available context
- Match the messaging tone specified
- Include a clear call-to-action aligned with the campaign goal
- Be professional but approachable

Return ONLY a valid JSON object with this structure:
{
  "subject": "Email subject line here",
  "body": "Email body here with proper line breaks (use \n for new lines)"
}

Do not include any markdown formatting or explanations, just the JSON object.`,
		lead.Name, lead.Role, lead.CompanyName, industry, location,
		in.MessagingTone, in.Goal, enrichedContext)

	response, err := a.ai.Complete(ctx, []ai.Message{
		{Role: "system", Content: "You are an expert cold email writer. Write compelling, personalized outreach emails. Always return valid JSON objects."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return DraftContent{}, err
	}

	var draft DraftContent
	if err := json.Unmarshal([]byte(stripFences(response)), &draft); err != nil || draft.Subject == "" || draft.Body == "" {
		a.log.Warn("failed to parse outreach response, using fallback",
			zap.String("company", lead.CompanyName), zap.Error(err))
		return fallbackDraft(lead, industry), nil
	}
	draft.Body = strings.ReplaceAll(draft.Body, `\n`, "\n")
	draft.Variant = "default"
	return draft, nil
}

func fallbackDraft(lead *models.Lead, industry string) DraftContent {
	if industry == "" {
		industry = "your industry"
	}
	return DraftContent{
		Subject: fmt.Sprintf("Re: %s", lead.CompanyName),
		Body: fmt.Sprintf("Hi %s,\n\nI noticed %s is in %s. I'd love to connect.\n\nBest regards",
			lead.Name, lead.CompanyName, industry),
		Variant: "default",
	}
}
