package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs against a real Redis when PATHFINDER_TEST_REDIS_URL is set, e.g.
// redis://localhost:6379/15.
func TestRedisCacheIntegration(t *testing.T) {
	url := os.Getenv("PATHFINDER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PATHFINDER_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	c.prefix = "pathfinder:test:" + t.Name() + ":"

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	n, err := c.Clear(ctx)
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v; want 1", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://nope"); err == nil {
		t.Error("expected error for non-redis URL")
	}
}
