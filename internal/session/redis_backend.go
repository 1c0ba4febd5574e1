package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keySession = "session:%s"

// stores session payloads in Redis with a per-key TTL
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Load(ctx context.Context, id string) (string, error) {
	data, err := b.client.Get(ctx, fmt.Sprintf(keySession, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to load session from redis: %w", err)
	}

	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, id, data string, ttl time.Duration) error {
	if err := b.client.Set(ctx, fmt.Sprintf(keySession, id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}

	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, id string) error {
	if err := b.client.Del(ctx, fmt.Sprintf(keySession, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}

	return nil
}
