package models

import "testing"

func TestIsValidLeadTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{LeadStatusNew, LeadStatusContacted, true},
		{LeadStatusContacted, LeadStatusResponded, true},
		{LeadStatusResponded, LeadStatusQualified, true},

		// Rejection is reachable from any non-terminal state
		{LeadStatusNew, LeadStatusRejected, true},
		{LeadStatusContacted, LeadStatusRejected, true},
		{LeadStatusResponded, LeadStatusRejected, true},

		// Invalid transitions
		{LeadStatusNew, LeadStatusResponded, false},
		{LeadStatusNew, LeadStatusQualified, false},
		{LeadStatusContacted, LeadStatusQualified, false},
		{LeadStatusQualified, LeadStatusRejected, false},
		{LeadStatusRejected, LeadStatusNew, false},
		{LeadStatusQualified, LeadStatusContacted, false},
		{"nonexistent", LeadStatusContacted, false},
		{LeadStatusNew, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidLeadTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidLeadTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestTerminalLeadStatusesHaveNoTransitions(t *testing.T) {
	terminal := []string{LeadStatusQualified, LeadStatusRejected}
	for _, status := range terminal {
		transitions := ValidLeadTransitions[status]
		if len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}
