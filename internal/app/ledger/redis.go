package ledger

import (
	"context"
	"errors"

	"francoggm/paygate-go-redis/internal/models"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "paygate:status:"

type RedisLedger struct {
	cache     *redis.Client
	keyPrefix string
}

// NewRedis wraps an already constructed client. The client is owned by the
// ledger from here on and is released by Close.
func NewRedis(cache *redis.Client, keyPrefix string) *RedisLedger {
	return &RedisLedger{
		cache:     cache,
		keyPrefix: keyPrefix,
	}
}

func (l *RedisLedger) Set(ctx context.Context, id models.CorrelationID, status models.Status) error {
	if err := l.cache.Set(ctx, l.key(id), status.String(), 0).Err(); err != nil {
		return unavailable("redis set", err)
	}

	return nil
}

func (l *RedisLedger) Get(ctx context.Context, id models.CorrelationID) (models.Status, error) {
	value, err := l.cache.Get(ctx, l.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.StatusUnknown, nil
	}
	if err != nil {
		return models.StatusUnknown, unavailable("redis get", err)
	}

	return models.ParseStatus(value), nil
}

func (l *RedisLedger) Ping(ctx context.Context) error {
	if err := l.cache.Ping(ctx).Err(); err != nil {
		return unavailable("redis ping", err)
	}

	return nil
}

func (l *RedisLedger) Close() error {
	return l.cache.Close()
}

func (l *RedisLedger) key(id models.CorrelationID) string {
	return l.keyPrefix + id.String()
}
