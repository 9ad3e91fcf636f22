// Package cache memoizes search results in Redis, keyed by index generation so
// that a reload never serves results computed against an older corpus.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Store is the key/value backend of the result cache.
type Store interface {
	// Get returns the value for key; found is false on a miss.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	ConnectRetries int
}

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with PING,
// retrying with exponential backoff up to cfg.ConnectRetries times.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 200 * time.Millisecond
	exponentialBackoff.MaxInterval = 2 * time.Second

	retries := cfg.ConnectRetries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exponentialBackoff, uint64(retries)), ctx)

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	}
	if err := backoff.Retry(ping, policy); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed after %d retries: %w", retries, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Get returns the string value for the given key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores a value with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
