package agents

import (
	"context"
	"fmt"
	"testing"
)

func analysisInput() AnalysisInput {
	return AnalysisInput{
		Lead:  testLead(),
		Draft: DraftContent{Subject: "Hello", Body: "Hi John", Variant: "default"},
		ICP:   testICP,
		Goal:  "book demos",
	}
}

func TestAnalyzeLeadParsesResponse(t *testing.T) {
	response := `{
		"score": 85,
		"reasoning": "Strong ICP match",
		"suggestions": ["Mention recent funding"],
		"next_steps": ["Send email", "Follow up in 3 days"]
	}`

	agent := NewAnalysisAgent(&stubCompleter{response: response}, nopLog())
	result, err := agent.AnalyzeLead(context.Background(), analysisInput())
	if err != nil {
		t.Fatalf("AnalyzeLead: %v", err)
	}
	if result.Score != 85 {
		t.Errorf("score = %d, want 85", result.Score)
	}
	if result.Reasoning != "Strong ICP match" {
		t.Errorf("reasoning = %q", result.Reasoning)
	}
	if len(result.NextSteps) != 2 {
		t.Errorf("next steps = %v", result.NextSteps)
	}
}

func TestAnalyzeLeadScoreClamping(t *testing.T) {
	tests := []struct {
		rawScore string
		expected int
	}{
		{"-20", 0},
		{"250", 100},
		{"0", 0},
		{"100", 100},
		{"73", 73},
	}

	for _, tt := range tests {
		t.Run(tt.rawScore, func(t *testing.T) {
			response := fmt.Sprintf(`{"score": %s, "reasoning": "r"}`, tt.rawScore)
			agent := NewAnalysisAgent(&stubCompleter{response: response}, nopLog())
			result, err := agent.AnalyzeLead(context.Background(), analysisInput())
			if err != nil {
				t.Fatalf("AnalyzeLead: %v", err)
			}
			if result.Score != tt.expected {
				t.Errorf("score = %d, want %d", result.Score, tt.expected)
			}
		})
	}
}

func TestAnalyzeLeadMissingScoreDefaultsTo50(t *testing.T) {
	agent := NewAnalysisAgent(&stubCompleter{response: `{"reasoning":"no score field"}`}, nopLog())
	result, err := agent.AnalyzeLead(context.Background(), analysisInput())
	if err != nil {
		t.Fatalf("AnalyzeLead: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("score = %d, want 50", result.Score)
	}
}

func TestAnalyzeLeadMalformedResponseUsesFallback(t *testing.T) {
	agent := NewAnalysisAgent(&stubCompleter{response: "I refuse to answer in JSON"}, nopLog())
	result, err := agent.AnalyzeLead(context.Background(), analysisInput())
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if result.Score != 50 {
		t.Errorf("fallback score = %d, want 50", result.Score)
	}
	if result.Reasoning == "" || len(result.Suggestions) == 0 || len(result.NextSteps) == 0 {
		t.Errorf("fallback must carry reasoning/suggestions/next steps, got %+v", result)
	}

	// Fallback is stable across identical inputs
	again, _ := agent.AnalyzeLead(context.Background(), analysisInput())
	if again.Score != result.Score || again.Reasoning != result.Reasoning {
		t.Errorf("fallback not deterministic")
	}
}
