package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// Append-only: no update or delete methods exist by design. Implementations
// enforce the retention cap themselves (oldest entries dropped first) and
// return events most-recent-first.
type Repository interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context, limit int) ([]Event, error)
	ListByDecision(ctx context.Context, decisionID string) ([]Event, error)
}

var ErrInvalidEvent = errors.New("audit: invalid event")

// Service records pipeline audit events.
//
// Audit is internal-only and best-effort: callers log append failures and
// continue.
type Service struct {
	repo  Repository
	clock func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now, newID: uuid.NewString}
}

// WithClock overrides the event timestamp source. Returns s for chaining.
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.DecisionID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogStage records one pipeline stage for a decision.
func (s *Service) LogStage(ctx context.Context, decisionID string, stage EventType, actorUserID, message, data string) error {
	return s.Append(ctx, Event{
		DecisionID:  decisionID,
		Type:        stage,
		ActorUserID: actorUserID,
		Message:     message,
		Data:        data,
	})
}

// List returns up to limit events, most recent first.
func (s *Service) List(ctx context.Context, limit int) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if limit <= 0 || limit > DefaultMaxEvents {
		limit = DefaultMaxEvents
	}
	return s.repo.List(ctx, limit)
}

// ListByDecision returns every retained event for one pipeline run.
func (s *Service) ListByDecision(ctx context.Context, decisionID string) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if decisionID == "" {
		return nil, ErrInvalidEvent
	}
	return s.repo.ListByDecision(ctx, decisionID)
}
