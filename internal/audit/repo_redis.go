package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisEventsKey = "audit:events"

// RedisRepo stores events in a capped Redis list (LPUSH + LTRIM), which
// gives most-recent-first ordering and oldest-first eviction natively.
type RedisRepo struct {
	rdb *redis.Client
	max int
}

func NewRedisRepo(rdb *redis.Client, max int) *RedisRepo {
	if max <= 0 {
		max = DefaultMaxEvents
	}
	return &RedisRepo{rdb: rdb, max: max}
}

func (r *RedisRepo) Append(ctx context.Context, e Event) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, redisEventsKey, raw)
	pipe.LTrim(ctx, redisEventsKey, 0, int64(r.max-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisRepo) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > r.max {
		limit = r.max
	}
	rows, err := r.rdb.LRange(ctx, redisEventsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return decodeEvents(rows)
}

func (r *RedisRepo) ListByDecision(ctx context.Context, decisionID string) ([]Event, error) {
	// The retained window is small (<= max); filter client-side.
	all, err := r.List(ctx, r.max)
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, e := range all {
		if e.DecisionID == decisionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func decodeEvents(rows []string) ([]Event, error) {
	out := make([]Event, 0, len(rows))
	for _, raw := range rows {
		var e Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			// Skip corrupt entries rather than failing the whole read.
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
