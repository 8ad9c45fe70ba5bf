package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "darsplan:"

// RedisConfig holds connection settings for the Redis KV backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// RedisConfigFromEnv reads DARS_REDIS_* variables. It returns (nil, nil)
// when DARS_REDIS_ADDR is unset, meaning the SQLite KV should be used.
func RedisConfigFromEnv() (*RedisConfig, error) {
	addr := os.Getenv("DARS_REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	cfg := &RedisConfig{
		Addr:     addr,
		Password: os.Getenv("DARS_REDIS_PASSWORD"),
		TLS:      os.Getenv("DARS_REDIS_TLS") == "true",
	}
	if raw := os.Getenv("DARS_REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DARS_REDIS_DB %q: %w", raw, err)
		}
		cfg.DB = db
	}
	return cfg, nil
}

// RedisKV implements KV on Redis. Keys are namespaced with "darsplan:".
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// OpenRedisKV connects to Redis and verifies the connection with PING.
func OpenRedisKV(ctx context.Context, cfg RedisConfig) (*RedisKV, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisKV(client), nil
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
