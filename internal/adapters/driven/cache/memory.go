package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*Memory)(nil)

// Memory implements driven.EmbeddingCache with an in-process map.
// Eviction is opportunistic: once the entry count passes the high-water
// mark, a Put sweeps all TTL-expired entries in one pass. There is no
// background timer.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]*domain.CacheEntry
	settings domain.CacheSettings
	clock    func() time.Time
}

// NewMemory creates a new in-memory cache. A nil clock uses time.Now;
// tests inject a fake one to drive TTL expiry.
func NewMemory(settings domain.CacheSettings, clock func() time.Time) *Memory {
	if settings.TTL <= 0 {
		settings.TTL = domain.DefaultCacheSettings().TTL
	}
	if settings.MaxEntries <= 0 {
		settings.MaxEntries = domain.DefaultCacheSettings().MaxEntries
	}
	if clock == nil {
		clock = time.Now
	}
	return &Memory{
		entries:  make(map[string]*domain.CacheEntry),
		settings: settings,
		clock:    clock,
	}
}

// Get returns the entry for key, purging it lazily if expired
func (c *Memory) Get(_ context.Context, key string) (*domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if entry.Expired(c.clock(), c.settings.TTL) {
		delete(c.entries, key)
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Put stores an entry, sweeping expired entries once the high-water mark
// is exceeded
func (c *Memory) Put(_ context.Context, key string, entry *domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry

	if len(c.entries) > c.settings.MaxEntries {
		now := c.clock()
		for k, e := range c.entries {
			if e.Expired(now, c.settings.TTL) {
				delete(c.entries, k)
			}
		}
	}
	return nil
}

// Delete removes a single entry
func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear removes all entries
func (c *Memory) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.CacheEntry)
	return nil
}

// Size returns the current number of entries, expired ones included
func (c *Memory) Size(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), nil
}
