package agents

import (
	"context"
	"testing"

	"github.com/prospectr/backend/internal/ai"
	"go.uber.org/zap"
)

// stubCompleter returns a canned response or error.
type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, _ []ai.Message) (string, error) {
	return s.response, s.err
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"fence without newline", "```json{\"a\":1}```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.expected {
				t.Errorf("stripFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		input    *float64
		expected int
	}{
		{"missing", nil, 50},
		{"negative", f(-5), 0},
		{"above range", f(150), 100},
		{"zero is valid", f(0), 0},
		{"in range", f(85), 85},
		{"upper bound", f(100), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampScore(tt.input); got != tt.expected {
				t.Errorf("clampScore = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFallbackEmailDeterministic(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		expected string
	}{
		{"John Doe", "Example Corp", "john.doe@examplecorp.com"},
		{"Jane Smith", "Acme", "jane.smith@acme.com"},
		{"Mary Ann Lee", "Big Data Labs", "mary.ann.lee@bigdatalabs.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackEmail(tt.name, tt.company)
			if got != tt.expected {
				t.Errorf("FallbackEmail(%q, %q) = %q, want %q", tt.name, tt.company, got, tt.expected)
			}
			// Same input always yields the same address
			if again := FallbackEmail(tt.name, tt.company); again != got {
				t.Errorf("FallbackEmail not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func nopLog() *zap.Logger { return zap.NewNop() }
