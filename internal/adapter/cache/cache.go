// Package cache provides expiring key/value stores for resolved species
// lists and geocoded labels, backed by process memory or Redis.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/heartmarshall/wildlife-backend/internal/metrics"
)

// Store holds encoded values under string keys until they expire.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Typed stores JSON-encoded values of type T in a Store under a name prefix.
// Values are copied in and out, so callers may mutate what they get back.
type Typed[T any] struct {
	store  Store
	name   string
	prefix string
	log    *slog.Logger
}

// NewTyped creates a typed view over store. Keys are stored as name:key.
func NewTyped[T any](logger *slog.Logger, store Store, name string) *Typed[T] {
	return &Typed[T]{
		store:  store,
		name:   name,
		prefix: name + ":",
		log:    logger.With("adapter", "cache", "cache", name),
	}
}

// Get returns the value stored under key.
func (c *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, ok := c.store.Get(ctx, c.prefix+key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()
		return zero, false
	}

	metrics.CacheHitsTotal.WithLabelValues(c.name).Inc()
	return v, true
}

// Set stores v under key. Encoding failures are logged and dropped.
func (c *Typed[T]) Set(ctx context.Context, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	c.store.Set(ctx, c.prefix+key, raw)
}
