package events

import "context"

// StreamPipeline carries live run-progress events for dashboards.
const StreamPipeline = "events:pipeline"

// Event types
const (
	EventRunStarted   = "campaign_run_started"
	EventRunCompleted = "campaign_run_completed"
	EventRunFailed    = "campaign_run_failed"
	EventLeadScored   = "lead_scored"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
