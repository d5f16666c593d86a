package audit

import "time"

// Event is an immutable, append-only audit record for one pipeline stage.
//
// Invariants:
// - Events are never updated or deleted individually.
// - decision_id is required; every event belongs to one pipeline run.
// - Audit writes are best-effort; do not block the pipeline on audit failures.
// - Stores keep at most the configured cap, dropping oldest entries first.
type Event struct {
	ID         string `json:"id" db:"id"`
	DecisionID string `json:"decision_id" db:"decision_id"`

	// Type is the pipeline stage or terminal outcome being recorded.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the user whose submission caused the event (if known).
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Data is optional JSON with stage details.
	Data string `json:"data,omitempty" db:"data"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeIntake     EventType = "decision-intake"
	EventTypeAnalysis   EventType = "decision-analysis"
	EventTypeExtraction EventType = "action-extraction"
	EventTypeRisk       EventType = "risk-evaluation"
	EventTypeCompleted  EventType = "workflow-completed"
	EventTypeFailed     EventType = "workflow-failed"
)

// DefaultMaxEvents caps how many events a store retains.
const DefaultMaxEvents = 1000
