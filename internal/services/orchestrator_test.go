package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prospectr/backend/internal/agents"
	"github.com/prospectr/backend/internal/events"
	"github.com/prospectr/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- scripted agents ---

type fakeSourcing struct {
	candidates []models.SourcedCandidate
	err        error
	gotCount   int
}

func (f *fakeSourcing) SourceLeads(_ context.Context, _ models.ICPConfig, count int) ([]models.SourcedCandidate, error) {
	f.gotCount = count
	return f.candidates, f.err
}

type fakeEnrichment struct {
	err error
}

func (f *fakeEnrichment) EnrichLead(_ context.Context, cand models.SourcedCandidate) (models.EnrichmentData, error) {
	if f.err != nil {
		return models.EnrichmentData{}, f.err
	}
	return models.EnrichmentData{Email: agents.FallbackEmail(cand.Name, cand.CompanyName)}, nil
}

type fakeOutreach struct {
	err error
}

func (f *fakeOutreach) GenerateDraft(_ context.Context, in agents.OutreachInput) (agents.DraftContent, error) {
	if f.err != nil {
		return agents.DraftContent{}, f.err
	}
	return agents.DraftContent{
		Subject: "Re: " + in.Lead.CompanyName,
		Body:    "Hi " + in.Lead.Name,
		Variant: "default",
	}, nil
}

type fakeAnalysis struct {
	score int
	err   error
}

func (f *fakeAnalysis) AnalyzeLead(_ context.Context, _ agents.AnalysisInput) (agents.Analysis, error) {
	if f.err != nil {
		return agents.Analysis{}, f.err
	}
	return agents.Analysis{
		Score:       f.score,
		Reasoning:   "fit assessment",
		Suggestions: []string{"personalize more"},
		NextSteps:   []string{"send email"},
	}, nil
}

// --- in-memory stores ---

type memLeadStore struct {
	leads      []*models.Lead
	scores     map[uuid.UUID]int
	failCreate int // 1-based index of Create call that fails, 0 = never
	calls      int
}

func (m *memLeadStore) Create(_ context.Context, l *models.Lead) error {
	m.calls++
	if m.failCreate > 0 && m.calls == m.failCreate {
		return errors.New("lead insert failed")
	}
	l.ID = uuid.New()
	m.leads = append(m.leads, l)
	return nil
}

func (m *memLeadStore) UpdateScore(_ context.Context, _, id uuid.UUID, score int) error {
	if m.scores == nil {
		m.scores = make(map[uuid.UUID]int)
	}
	m.scores[id] = score
	return nil
}

type memDraftStore struct {
	drafts []*models.OutreachDraft
	scores map[uuid.UUID]int
}

func (m *memDraftStore) Create(_ context.Context, d *models.OutreachDraft) error {
	d.ID = uuid.New()
	m.drafts = append(m.drafts, d)
	return nil
}

func (m *memDraftStore) UpdateScore(_ context.Context, _, id uuid.UUID, score int) error {
	if m.scores == nil {
		m.scores = make(map[uuid.UUID]int)
	}
	m.scores[id] = score
	return nil
}

type memEventStore struct {
	events []models.LeadEvent
}

func (m *memEventStore) Append(_ context.Context, e *models.LeadEvent) error {
	e.ID = uuid.New()
	m.events = append(m.events, *e)
	return nil
}

func (m *memEventStore) forLead(id uuid.UUID) []models.LeadEvent {
	var out []models.LeadEvent
	for _, e := range m.events {
		if e.LeadID == id {
			out = append(out, e)
		}
	}
	return out
}

type memRunStore struct {
	run       *models.CampaignRun
	createErr error
	failedMsg string
}

func (m *memRunStore) Create(_ context.Context, run *models.CampaignRun) error {
	if m.createErr != nil {
		return m.createErr
	}
	run.ID = uuid.New()
	m.run = run
	return nil
}

func (m *memRunStore) MarkCompleted(_ context.Context, _, _ uuid.UUID, leadsGenerated, creditsUsed int) error {
	m.run.Status = models.RunStatusCompleted
	m.run.LeadsGenerated = leadsGenerated
	m.run.CreditsUsed = creditsUsed
	return nil
}

func (m *memRunStore) MarkFailed(_ context.Context, _, _ uuid.UUID, leadsGenerated, creditsUsed int, errMsg string) error {
	m.run.Status = models.RunStatusFailed
	m.run.LeadsGenerated = leadsGenerated
	m.run.CreditsUsed = creditsUsed
	m.failedMsg = errMsg
	return nil
}

type nopPublisher struct {
	published []events.Event
}

func (n *nopPublisher) Publish(_ context.Context, _ string, e events.Event) error {
	n.published = append(n.published, e)
	return nil
}

// --- harness ---

type orchFixture struct {
	sourcing *fakeSourcing
	enrich   *fakeEnrichment
	outreach *fakeOutreach
	analysis *fakeAnalysis
	leads    *memLeadStore
	drafts   *memDraftStore
	events   *memEventStore
	runs     *memRunStore
	bus      *nopPublisher
	orch     *Orchestrator
}

func newFixture(candidates int) *orchFixture {
	f := &orchFixture{
		sourcing: &fakeSourcing{},
		enrich:   &fakeEnrichment{},
		outreach: &fakeOutreach{},
		analysis: &fakeAnalysis{score: 80},
		leads:    &memLeadStore{},
		drafts:   &memDraftStore{},
		events:   &memEventStore{},
		runs:     &memRunStore{},
		bus:      &nopPublisher{},
	}
	for i := 0; i < candidates; i++ {
		f.sourcing.candidates = append(f.sourcing.candidates, models.SourcedCandidate{
			CompanyName: fmt.Sprintf("Company %d", i+1),
			Role:        "CTO",
			Name:        fmt.Sprintf("Person %d", i+1),
		})
	}
	f.orch = NewOrchestrator(f.sourcing, f.enrich, f.outreach, f.analysis,
		f.leads, f.drafts, f.events, f.runs, f.bus, zap.NewNop())
	return f
}

var runCfg = RunConfig{
	CampaignID:    uuid.New(),
	ICP:           models.ICPConfig{Industry: "Technology", CompanySize: "50-200", Role: "CTO", Geography: "US"},
	MessagingTone: "friendly",
	Goal:          "book demos",
	LeadCount:     3,
}

func TestRunAllCandidatesSucceed(t *testing.T) {
	f := newFixture(3)
	orgID := uuid.New()

	result := f.orch.Run(context.Background(), orgID, runCfg)

	require.True(t, result.Success)
	assert.Equal(t, 3, result.LeadsGenerated)
	assert.Equal(t, 3+9, result.CreditsUsed) // requested + 3 per processed candidate

	require.Len(t, f.leads.leads, 3)
	require.Len(t, f.drafts.drafts, 3)
	assert.Equal(t, models.RunStatusCompleted, f.runs.run.Status)
	assert.Equal(t, result.CreditsUsed, f.runs.run.CreditsUsed)

	// Every write carries the tenant
	for _, l := range f.leads.leads {
		assert.Equal(t, orgID, l.OrganizationID)
	}
}

func TestRunEventOrderingPerLead(t *testing.T) {
	f := newFixture(2)

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)
	require.True(t, result.Success)

	for _, lead := range f.leads.leads {
		evts := f.events.forLead(lead.ID)
		require.Len(t, evts, 3)
		assert.Equal(t, models.LeadEventEnriched, evts[0].EventType)
		assert.Equal(t, models.LeadEventOutreachGenerated, evts[1].EventType)
		assert.Equal(t, models.LeadEventAnalyzed, evts[2].EventType)
	}
}

func TestRunLeadAndDraftScoredTogether(t *testing.T) {
	f := newFixture(1)
	f.analysis.score = 91

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)
	require.True(t, result.Success)

	lead := f.leads.leads[0]
	draft := f.drafts.drafts[0]
	assert.Equal(t, 91, f.leads.scores[lead.ID])
	assert.Equal(t, 91, f.drafts.scores[draft.ID])

	analyzed := f.events.forLead(lead.ID)[2]
	assert.Equal(t, 91, analyzed.Metadata["score"])
}

func TestRunStorageFailureSkipsCandidateOnly(t *testing.T) {
	f := newFixture(3)
	f.leads.failCreate = 2 // candidate #2's lead insert fails

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.LeadsGenerated)
	assert.Equal(t, 3+6, result.CreditsUsed)

	// No partial rows for the failed candidate
	require.Len(t, f.leads.leads, 2)
	require.Len(t, f.drafts.drafts, 2)
	for _, l := range f.leads.leads {
		assert.NotEqual(t, "Company 2", l.CompanyName)
	}
}

func TestRunSourcingFailureIsRunFatal(t *testing.T) {
	f := newFixture(0)
	f.sourcing.err = errors.New("ai service returned 500: boom")

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.LeadsGenerated)
	assert.Equal(t, 0, result.CreditsUsed)
	assert.Contains(t, result.Err, "boom")
	assert.Equal(t, models.RunStatusFailed, f.runs.run.Status)
	assert.Contains(t, f.runs.failedMsg, "boom")
}

func TestRunDegradedSourcingYieldsEmptyCompletedRun(t *testing.T) {
	// Sourcing parse failure degrades to an empty batch, not an error:
	// the run completes having charged only the sourcing cost.
	f := newFixture(0)

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)

	require.True(t, result.Success)
	assert.Equal(t, 0, result.LeadsGenerated)
	assert.Equal(t, runCfg.LeadCount, result.CreditsUsed)
	assert.Equal(t, models.RunStatusCompleted, f.runs.run.Status)
}

func TestRunEnrichmentErrorSkipsAllCandidates(t *testing.T) {
	f := newFixture(2)
	f.enrich.err = errors.New("upstream down")

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)

	require.True(t, result.Success)
	assert.Equal(t, 0, result.LeadsGenerated)
	assert.Equal(t, runCfg.LeadCount, result.CreditsUsed)
	assert.Empty(t, f.leads.leads)
}

func TestRunDefaultsLeadCount(t *testing.T) {
	f := newFixture(0)
	cfg := runCfg
	cfg.LeadCount = 0

	result := f.orch.Run(context.Background(), uuid.New(), cfg)

	require.True(t, result.Success)
	assert.Equal(t, DefaultLeadCount, f.sourcing.gotCount)
	assert.Equal(t, DefaultLeadCount, result.CreditsUsed)
}

func TestRunCreateFailureReturnsError(t *testing.T) {
	f := newFixture(1)
	f.runs.createErr = errors.New("db down")

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "failed to create campaign run")
	assert.Empty(t, f.leads.leads)
}

func TestRunFallbackScoreFlowsToBothRows(t *testing.T) {
	// An unparseable analysis response degrades to score 50 inside the
	// agent; the orchestrator writes that 50 to lead, draft and event.
	f := newFixture(1)
	f.analysis.score = 50

	result := f.orch.Run(context.Background(), uuid.New(), runCfg)
	require.True(t, result.Success)

	lead := f.leads.leads[0]
	assert.Equal(t, 50, f.leads.scores[lead.ID])
	assert.Equal(t, 50, f.drafts.scores[f.drafts.drafts[0].ID])
	assert.Equal(t, 50, f.events.forLead(lead.ID)[2].Metadata["score"])
}
