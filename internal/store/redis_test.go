package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}

func TestRedisKV_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := setupRedisContainer(ctx, t)
	defer cleanup()

	kv := NewRedisKV(client)

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "usage:2026-10-19", "42", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "usage:2026-10-19")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "42" {
		t.Fatalf("got (%q, %v), want (\"42\", true)", got, ok)
	}

	ttl, err := client.TTL(ctx, "darsplan:usage:2026-10-19").Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestRedisConfigFromEnv(t *testing.T) {
	t.Setenv("DARS_REDIS_ADDR", "")
	cfg, err := RedisConfigFromEnv()
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config when unset, got %+v, %v", cfg, err)
	}

	t.Setenv("DARS_REDIS_ADDR", "localhost:6380")
	t.Setenv("DARS_REDIS_DB", "3")
	t.Setenv("DARS_REDIS_TLS", "true")
	cfg, err = RedisConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != "localhost:6380" || cfg.DB != 3 || !cfg.TLS {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv("DARS_REDIS_DB", "three")
	if _, err := RedisConfigFromEnv(); err == nil {
		t.Fatal("expected error for non-numeric DB")
	}
}
