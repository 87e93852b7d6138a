package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Store with a fixed TTL.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a Memory store. Expired items are purged every cleanup.
func NewMemory(ttl, cleanup time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, cleanup)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.c.Set(key, value, gocache.DefaultExpiration)
}

// Flush drops every item.
func (m *Memory) Flush() { m.c.Flush() }

// Len returns the number of stored items, including expired ones not yet
// purged.
func (m *Memory) Len() int { return m.c.ItemCount() }
