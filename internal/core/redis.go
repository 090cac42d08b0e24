// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/summercamp-api/internal/config"
)

// Redis backs the shared rate limiter. It carries no domain state.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	r := &Redis{Client: redis.NewClient(opts)}
	if err := r.Ping(ctx); err != nil {
		_ = r.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return r, nil
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}
