package history

import (
	"context"
	"sync"
)

// MemoryRepo keeps per-user history in memory. Useful for tests and
// single-process deployments.
type MemoryRepo struct {
	mu      sync.Mutex
	max     int
	entries map[string][]string
}

func NewMemoryRepo(max int) *MemoryRepo {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryRepo{max: max, entries: make(map[string][]string)}
}

func (r *MemoryRepo) Push(ctx context.Context, userID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append([]string{text}, r.entries[userID]...)
	if len(list) > r.max {
		list = list[:r.max]
	}
	r.entries[userID] = list
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.entries[userID]))
	copy(out, r.entries[userID])
	return out, nil
}
