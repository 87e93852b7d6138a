package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/wildlife-backend/internal/config"
)

// Redis is a Store shared between instances. Redis errors read as misses
// and failed writes are logged; the cache never fails a request.
type Redis struct {
	rc  *redis.Client
	ttl time.Duration
	log *slog.Logger
}

// OpenRedis connects to the server in cfg. It returns nil when Redis is not
// configured.
func OpenRedis(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// NewRedis wraps rc as a Store whose keys expire after ttl.
func NewRedis(logger *slog.Logger, rc *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rc: rc, ttl: ttl, log: logger.With("adapter", "redis")}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.rc.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WarnContext(ctx, "redis get failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.rc.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.log.WarnContext(ctx, "redis set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rc.Ping(ctx).Err()
}
