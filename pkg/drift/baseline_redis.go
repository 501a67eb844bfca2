package drift

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares baselines across kernel replicas via Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a Redis-backed baseline store. ttl <= 0 keeps
// baselines indefinitely.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: "adra:drift:",
	}
}

// Get returns the stored digest for key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	digest, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoBaseline
	}
	if err != nil {
		return "", err
	}
	return digest, nil
}

// Put records the digest for key, replacing any prior baseline.
func (s *RedisStore) Put(ctx context.Context, key, digest string) error {
	return s.client.Set(ctx, s.prefix+key, digest, s.ttl).Err()
}
