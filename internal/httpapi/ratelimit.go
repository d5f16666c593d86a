package httpapi

import (
	"context"
	"time"

	"decision-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RateLimiter gates decision submissions per caller.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter enforces a fixed-window submission cap shared across
// API replicas.
type RedisRateLimiter struct {
	RDB    *redis.Client
	Limit  int
	Window time.Duration
}

func (l RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return utils.AllowRate(ctx, l.RDB, "ratelimit:submit:"+key, l.Limit, l.Window)
}
