package decisions

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrInvalidRecord = errors.New("decisions: invalid record")

// Repository persists decision records.
type Repository interface {
	Save(ctx context.Context, rec Record) error
	List(ctx context.Context, from, to time.Time) ([]Record, error)
	Get(ctx context.Context, decisionID string) (Record, bool, error)
}

// MemoryRepo keeps records in memory, most recent first.
type MemoryRepo struct {
	mu      sync.Mutex
	records []Record
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Save(ctx context.Context, rec Record) error {
	if rec.DecisionID == "" {
		return ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]Record{rec}, r.records...)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, from, to time.Time) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for _, rec := range r.records {
		if rec.CreatedAt.Before(from) || !rec.CreatedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, decisionID string) (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.DecisionID == decisionID {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}
