package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/prospectr/backend/internal/agents"
	"github.com/prospectr/backend/internal/events"
	"github.com/prospectr/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultLeadCount is the batch size when the caller does not ask for a
// specific one.
const DefaultLeadCount = 10

// CreditsPerLeadEstimate is the admission-control estimate: one sourcing
// credit plus one per downstream stage (enrich, outreach, analyze).
const CreditsPerLeadEstimate = 4

// Agent interfaces consumed by the orchestrator. Satisfied by the
// internal/agents implementations; tests substitute scripted fakes.
type SourcingAgent interface {
	SourceLeads(ctx context.Context, icp models.ICPConfig, count int) ([]models.SourcedCandidate, error)
}

type EnrichmentAgent interface {
	EnrichLead(ctx context.Context, cand models.SourcedCandidate) (models.EnrichmentData, error)
}

type OutreachAgent interface {
	GenerateDraft(ctx context.Context, in agents.OutreachInput) (agents.DraftContent, error)
}

type AnalysisAgent interface {
	AnalyzeLead(ctx context.Context, in agents.AnalysisInput) (agents.Analysis, error)
}

// Storage boundaries for pipeline rows; every write is scoped by the
// organization the run belongs to.
type LeadStore interface {
	Create(ctx context.Context, l *models.Lead) error
	UpdateScore(ctx context.Context, orgID, id uuid.UUID, score int) error
}

type DraftStore interface {
	Create(ctx context.Context, d *models.OutreachDraft) error
	UpdateScore(ctx context.Context, orgID, id uuid.UUID, score int) error
}

type EventStore interface {
	Append(ctx context.Context, e *models.LeadEvent) error
}

type RunStore interface {
	Create(ctx context.Context, run *models.CampaignRun) error
	MarkCompleted(ctx context.Context, orgID, id uuid.UUID, leadsGenerated, creditsUsed int) error
	MarkFailed(ctx context.Context, orgID, id uuid.UUID, leadsGenerated, creditsUsed int, errMsg string) error
}

// RunConfig is the public trigger contract for one campaign run.
type RunConfig struct {
	CampaignID    uuid.UUID
	ICP           models.ICPConfig
	MessagingTone string
	Goal          string
	LeadCount     int
}

// RunResult reports aggregate progress even on failure, so callers can
// make informed retry decisions.
type RunResult struct {
	Success        bool   `json:"success"`
	LeadsGenerated int    `json:"leads_generated"`
	CreditsUsed    int    `json:"credits_used"`
	Err            string `json:"error,omitempty"`
}

// Orchestrator drives one campaign run end-to-end: source a batch, then
// enrich, draft and score each candidate sequentially, persisting a row
// and an event after every stage. A failure while processing one
// candidate is logged and skipped; it never aborts the batch.
type Orchestrator struct {
	sourcing   SourcingAgent
	enrichment EnrichmentAgent
	outreach   OutreachAgent
	analysis   AnalysisAgent
	leads      LeadStore
	drafts     DraftStore
	leadEvents EventStore
	runs       RunStore
	publisher  events.Publisher
	log        *zap.Logger
}

func NewOrchestrator(
	sourcing SourcingAgent,
	enrichment EnrichmentAgent,
	outreach OutreachAgent,
	analysis AnalysisAgent,
	leads LeadStore,
	drafts DraftStore,
	leadEvents EventStore,
	runs RunStore,
	publisher events.Publisher,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		sourcing:   sourcing,
		enrichment: enrichment,
		outreach:   outreach,
		analysis:   analysis,
		leads:      leads,
		drafts:     drafts,
		leadEvents: leadEvents,
		runs:       runs,
		publisher:  publisher,
		log:        log,
	}
}

// Run executes the full pipeline for one campaign. Candidates are
// processed strictly sequentially: each candidate's outreach and
// analysis depend on its own enrichment output, and the failure
// isolation contract assumes no cross-candidate overlap.
func (o *Orchestrator) Run(ctx context.Context, orgID uuid.UUID, cfg RunConfig) RunResult {
	leadCount := cfg.LeadCount
	if leadCount <= 0 {
		leadCount = DefaultLeadCount
	}

	run := &models.CampaignRun{
		OrganizationID: orgID,
		CampaignID:     cfg.CampaignID,
		Status:         models.RunStatusRunning,
	}
	if err := o.runs.Create(ctx, run); err != nil {
		return RunResult{Err: fmt.Sprintf("failed to create campaign run: %v", err)}
	}

	_ = o.publisher.Publish(ctx, events.StreamPipeline, events.Event{
		Type: events.EventRunStarted,
		Payload: map[string]any{
			"organization_id": orgID.String(),
			"run_id":          run.ID.String(),
			"campaign_id":     cfg.CampaignID.String(),
			"lead_count":      leadCount,
		},
	})

	o.log.Info("sourcing leads",
		zap.String("campaign_id", cfg.CampaignID.String()),
		zap.Int("lead_count", leadCount),
	)
	candidates, err := o.sourcing.SourceLeads(ctx, cfg.ICP, leadCount)
	if err != nil {
		// Sourcing failure is run-fatal: no candidates, nothing charged.
		_ = o.runs.MarkFailed(ctx, orgID, run.ID, 0, 0, err.Error())
		_ = o.publisher.Publish(ctx, events.StreamPipeline, events.Event{
			Type:    events.EventRunFailed,
			Payload: map[string]any{"organization_id": orgID.String(), "run_id": run.ID.String(), "error": err.Error()},
		})
		return RunResult{Err: err.Error()}
	}

	// Sourcing is charged per requested lead regardless of yield: it
	// reflects the upstream request cost, not the number returned.
	creditsUsed := leadCount
	leadsGenerated := 0

	for _, cand := range candidates {
		leadID, err := o.processCandidate(ctx, orgID, cfg, cand)
		if err != nil {
			o.log.Warn("skipping candidate",
				zap.String("campaign_id", cfg.CampaignID.String()),
				zap.String("candidate", cand.Name),
				zap.Error(err),
			)
			continue
		}
		leadsGenerated++
		creditsUsed += 3 // enrich + outreach + analyze

		_ = o.publisher.Publish(ctx, events.StreamPipeline, events.Event{
			Type: events.EventLeadScored,
			Payload: map[string]any{
				"organization_id": orgID.String(),
				"run_id":          run.ID.String(),
				"lead_id":         leadID.String(),
			},
		})
	}

	if err := o.runs.MarkCompleted(ctx, orgID, run.ID, leadsGenerated, creditsUsed); err != nil {
		o.log.Error("failed to finalize campaign run",
			zap.String("run_id", run.ID.String()), zap.Error(err))
	}

	_ = o.publisher.Publish(ctx, events.StreamPipeline, events.Event{
		Type: events.EventRunCompleted,
		Payload: map[string]any{
			"organization_id": orgID.String(),
			"run_id":          run.ID.String(),
			"leads_generated": leadsGenerated,
			"credits_used":    creditsUsed,
		},
	})

	return RunResult{Success: true, LeadsGenerated: leadsGenerated, CreditsUsed: creditsUsed}
}

// processCandidate runs enrich -> outreach -> analyze for a single
// candidate. Any error is returned to the caller's loop boundary: the
// candidate is skipped and contributes nothing to the counters.
func (o *Orchestrator) processCandidate(ctx context.Context, orgID uuid.UUID, cfg RunConfig, cand models.SourcedCandidate) (uuid.UUID, error) {
	enrichment, err := o.enrichment.EnrichLead(ctx, cand)
	if err != nil {
		return uuid.Nil, fmt.Errorf("enrichment: %w", err)
	}

	lead := buildLead(orgID, cfg.CampaignID, cand, enrichment)
	if err := o.leads.Create(ctx, lead); err != nil {
		return uuid.Nil, fmt.Errorf("persist lead: %w", err)
	}

	if err := o.leadEvents.Append(ctx, &models.LeadEvent{
		LeadID:    lead.ID,
		EventType: models.LeadEventEnriched,
		Metadata:  map[string]any{"enrichment_data": enrichment},
	}); err != nil {
		return uuid.Nil, fmt.Errorf("enriched event: %w", err)
	}

	content, err := o.outreach.GenerateDraft(ctx, agents.OutreachInput{
		Lead:          lead,
		ICP:           cfg.ICP,
		MessagingTone: cfg.MessagingTone,
		Goal:          cfg.Goal,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("outreach: %w", err)
	}

	draft := &models.OutreachDraft{
		OrganizationID: orgID,
		LeadID:         lead.ID,
		Subject:        content.Subject,
		Body:           content.Body,
		Variant:        content.Variant,
	}
	if err := o.drafts.Create(ctx, draft); err != nil {
		return uuid.Nil, fmt.Errorf("persist draft: %w", err)
	}

	if err := o.leadEvents.Append(ctx, &models.LeadEvent{
		LeadID:    lead.ID,
		EventType: models.LeadEventOutreachGenerated,
		Metadata:  map[string]any{"draft_id": draft.ID.String()},
	}); err != nil {
		return uuid.Nil, fmt.Errorf("outreach event: %w", err)
	}

	analysis, err := o.analysis.AnalyzeLead(ctx, agents.AnalysisInput{
		Lead:  lead,
		Draft: content,
		ICP:   cfg.ICP,
		Goal:  cfg.Goal,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("analysis: %w", err)
	}

	// Lead and draft carry the same score from the same analysis result.
	if err := o.leads.UpdateScore(ctx, orgID, lead.ID, analysis.Score); err != nil {
		return uuid.Nil, fmt.Errorf("score lead: %w", err)
	}
	if err := o.drafts.UpdateScore(ctx, orgID, draft.ID, analysis.Score); err != nil {
		return uuid.Nil, fmt.Errorf("score draft: %w", err)
	}

	if err := o.leadEvents.Append(ctx, &models.LeadEvent{
		LeadID:    lead.ID,
		EventType: models.LeadEventAnalyzed,
		Metadata: map[string]any{
			"score":       analysis.Score,
			"reasoning":   analysis.Reasoning,
			"suggestions": analysis.Suggestions,
			"next_steps":  analysis.NextSteps,
		},
	}); err != nil {
		return uuid.Nil, fmt.Errorf("analyzed event: %w", err)
	}

	return lead.ID, nil
}

func buildLead(orgID, campaignID uuid.UUID, cand models.SourcedCandidate, enrichment models.EnrichmentData) *models.Lead {
	lead := &models.Lead{
		OrganizationID: orgID,
		CampaignID:     campaignID,
		CompanyName:    cand.CompanyName,
		CompanySize:    optional(cand.CompanySize),
		Industry:       optional(cand.Industry),
		Role:           cand.Role,
		Name:           cand.Name,
		Email:          optional(enrichment.Email),
		LinkedinURL:    optional(enrichment.LinkedinURL),
		Location:       optional(cand.Location),
		EnrichedData:   enrichmentToMap(enrichment),
		Status:         models.LeadStatusNew,
	}
	return lead
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// enrichmentToMap round-trips the typed enrichment into the loose map
// stored in leads.enriched_data.
func enrichmentToMap(e models.EnrichmentData) map[string]any {
	b, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
