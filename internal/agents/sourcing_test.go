package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/prospectr/backend/internal/models"
)

var testICP = models.ICPConfig{
	Industry:    "Technology",
	CompanySize: "50-200",
	Role:        "CTO",
	Geography:   "US",
}

func TestSourceLeadsParsesCandidates(t *testing.T) {
	response := "```json\n" + `[
		{"company_name":"Acme","role":"CTO","name":"John Doe","location":"Austin, USA"},
		{"company_name":"Globex","company_size":"100-500","industry":"SaaS","role":"CTO","name":"Jane Smith"}
	]` + "\n```"

	agent := NewSourcingAgent(&stubCompleter{response: response}, nopLog())
	candidates, err := agent.SourceLeads(context.Background(), testICP, 10)
	if err != nil {
		t.Fatalf("SourceLeads: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].CompanyName != "Acme" || candidates[1].Industry != "SaaS" {
		t.Errorf("unexpected candidates %+v", candidates)
	}
}

func TestSourceLeadsTruncatesToRequestedCount(t *testing.T) {
	response := `[
		{"company_name":"A","role":"CTO","name":"A A"},
		{"company_name":"B","role":"CTO","name":"B B"},
		{"company_name":"C","role":"CTO","name":"C C"}
	]`

	agent := NewSourcingAgent(&stubCompleter{response: response}, nopLog())
	candidates, err := agent.SourceLeads(context.Background(), testICP, 2)
	if err != nil {
		t.Fatalf("SourceLeads: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(candidates))
	}
}

func TestSourceLeadsMalformedResponseDegradesToEmpty(t *testing.T) {
	agent := NewSourcingAgent(&stubCompleter{response: "sorry, I cannot do that"}, nopLog())
	candidates, err := agent.SourceLeads(context.Background(), testICP, 10)
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}

func TestSourceLeadsTransportErrorPropagates(t *testing.T) {
	agent := NewSourcingAgent(&stubCompleter{err: errors.New("upstream down")}, nopLog())
	_, err := agent.SourceLeads(context.Background(), testICP, 10)
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
}
