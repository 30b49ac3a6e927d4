// Package cache provides the byte cache used in front of the config store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New("cache miss")

	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not answer ping")
)

// Redis is a byte cache backed by a go-redis client.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to url (redis:// or rediss://) and pings it before returning.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return &Redis{client: client}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Add stores val only if key is absent and reports whether it did.
func (r *Redis) Add(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping reports whether the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
