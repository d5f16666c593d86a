package history

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "history:user:"

// RedisRepo stores per-user history in capped Redis lists.
// LPUSH + LTRIM keeps most-recent-first ordering and drops the tail.
type RedisRepo struct {
	rdb *redis.Client
	max int
}

func NewRedisRepo(rdb *redis.Client, max int) *RedisRepo {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &RedisRepo{rdb: rdb, max: max}
}

func (r *RedisRepo) Push(ctx context.Context, userID, text string) error {
	key := redisKeyPrefix + userID

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, key, text)
	pipe.LTrim(ctx, key, 0, int64(r.max-1))
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisRepo) List(ctx context.Context, userID string) ([]string, error) {
	return r.rdb.LRange(ctx, redisKeyPrefix+userID, 0, int64(r.max-1)).Result()
}
