package audit

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory capped event store, most-recent-first.
// Useful for tests and single-process deployments.
type MemoryRepo struct {
	mu     sync.Mutex
	max    int
	events []Event
}

func NewMemoryRepo(max int) *MemoryRepo {
	if max <= 0 {
		max = DefaultMaxEvents
	}
	return &MemoryRepo{max: max}
}

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append([]Event{e}, r.events...)
	if len(r.events) > r.max {
		r.events = r.events[:r.max]
	}
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]Event, limit)
	copy(out, r.events[:limit])
	return out, nil
}

func (r *MemoryRepo) ListByDecision(ctx context.Context, decisionID string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.DecisionID == decisionID {
			out = append(out, e)
		}
	}
	return out, nil
}
