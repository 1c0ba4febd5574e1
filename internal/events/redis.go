package events

import (
	"context"
	"encoding/json"
	"time"

	"codeberg.org/actas/server/internal/logger"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// publishes events as JSON on a Redis pub/sub channel
type RedisEmitter struct {
	client  *redis.Client
	channel string
}

func NewRedisEmitter(client *redis.Client, channel string) *RedisEmitter {
	return &RedisEmitter{client: client, channel: channel}
}

func (r *RedisEmitter) Emit(ctx context.Context, e Event) {
	e = stamp(e)

	payload, err := json.Marshal(e)
	if err != nil {
		logger.Warn("failed to encode event", "type", e.Type, "error", err)
		return
	}

	// detached from the request so a cancelled client still gets its event out
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := r.client.Publish(pubCtx, r.channel, payload).Err(); err != nil {
		logger.Warn("failed to publish event",
			"type", e.Type,
			"channel", r.channel,
			"error", err,
		)
	}
}
