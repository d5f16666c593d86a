package utils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// newTestClient returns a client that is never dialed; the tests below only
// exercise argument validation, which happens before any network call.
func newTestClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "localhost:0"})
}

func TestAllowRate_ValidatesArguments(t *testing.T) {
	ctx := context.Background()

	if _, err := AllowRate(ctx, nil, "k", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}

	rdb := newTestClient()
	if _, err := AllowRate(ctx, rdb, "", 1, time.Second); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := AllowRate(ctx, rdb, "k", 0, time.Second); err == nil {
		t.Fatalf("expected error for zero limit")
	}
	if _, err := AllowRate(ctx, rdb, "k", 1, 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
}
