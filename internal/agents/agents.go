// Package agents implements the four prompt-driven pipeline stages:
// sourcing, enrichment, outreach and analysis. Each agent builds a
// prompt, calls the completion backend and decodes the response into a
// typed result. Malformed responses degrade to a deterministic fallback
// instead of failing the batch.
package agents

import (
	"context"
	"strings"

	"github.com/prospectr/backend/internal/ai"
)

// Completer is the completion transport consumed by every agent.
type Completer interface {
	Complete(ctx context.Context, messages []ai.Message) (string, error)
}

// stripFences removes markdown code-fence wrapping that models add
// around JSON payloads despite instructions not to.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func clampScore(raw *float64) int {
	if raw == nil {
		return 50
	}
	switch {
	case *raw < 0:
		return 0
	case *raw > 100:
		return 100
	default:
		return int(*raw)
	}
}
