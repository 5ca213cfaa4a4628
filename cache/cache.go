// Package cache is a process-local key/value store with per-entry expiry.
//
// Expired entries are purged lazily when read. There is no background sweep
// and no capacity bound: keys are expected to come from a small, date-keyed
// domain that is bounded by the process lifetime.
package cache

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Entry is a cached value with its creation and expiry times.
type Entry[T any] struct {
	Data      T
	CreatedAt time.Time
	ExpiresAt time.Time
}

// EntryStats describes one entry for diagnostics.
type EntryStats struct {
	Key              string `json:"key"`
	AgeSeconds       int64  `json:"ageSeconds"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Cache stores values of type T keyed by string. Safe for concurrent use.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]*Entry[T]
	now     func() time.Time
}

// New creates an empty cache.
func New[T any](opts ...Option) *Cache[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		entries: make(map[string]*Entry[T]),
		now:     o.now,
	}
}

// Get returns the value for key while it is unexpired.
// An expired entry is removed and reported as a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(ent.ExpiresAt) {
		delete(c.entries, key)
		slog.Debug("cache entry expired", slog.String("key", key))
		return zero, false
	}
	slog.Debug("cache hit", slog.String("key", key))
	return ent.Data, true
}

// Set stores data under key for ttl, replacing any previous entry.
func (c *Cache[T]) Set(key string, data T, ttl time.Duration) {
	now := c.now()

	c.mu.Lock()
	c.entries[key] = &Entry[T]{
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	c.mu.Unlock()

	slog.Debug("cache set", slog.String("key", key), slog.Duration("ttl", ttl))
}

// Delete removes key. Removing a missing key is a no-op.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones
// that have not been read yet.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns per-entry age and remaining lifetime, sorted by key.
func (c *Cache[T]) Stats() []EntryStats {
	now := c.now()

	c.mu.Lock()
	stats := make([]EntryStats, 0, len(c.entries))
	for key, ent := range c.entries {
		stats = append(stats, EntryStats{
			Key:              key,
			AgeSeconds:       int64(now.Sub(ent.CreatedAt) / time.Second),
			ExpiresInSeconds: int64(ent.ExpiresAt.Sub(now) / time.Second),
		})
	}
	c.mu.Unlock()

	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}
