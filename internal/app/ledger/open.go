package ledger

import (
	"context"
	"fmt"

	"francoggm/paygate-go-redis/internal/config"

	"github.com/redis/go-redis/v9"
)

// Open builds the ledger selected by cfg.Backend. The Redis client is pinged
// once so a misconfigured store fails at startup rather than on the first
// webhook.
func Open(ctx context.Context, cfg config.Ledger) (Ledger, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		opts, err := redisOptions(cfg.Redis)
		if err != nil {
			return nil, err
		}

		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, unavailable("redis ping", err)
		}

		return NewRedis(rdb, cfg.Redis.KeyPrefix), nil
	case config.BackendBolt:
		return OpenBolt(cfg.Bolt.Path)
	case config.BackendSQL:
		return OpenSQL(ctx, cfg.SQL.Driver, cfg.SQL.DSN)
	case config.BackendMemory:
		return NewMemory(), nil
	}

	return nil, fmt.Errorf("ledger: unknown backend %q", cfg.Backend)
}

func redisOptions(cfg config.Redis) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("ledger: parse redis url: %w", err)
		}
		opts = parsed
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = 1
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	return opts, nil
}
