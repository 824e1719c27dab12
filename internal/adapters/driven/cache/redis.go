package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*Redis)(nil)

// embeddingPrefix namespaces cache keys in Redis
const embeddingPrefix = "embedding:"

// Redis implements driven.EmbeddingCache backed by Redis.
// TTL expiry is delegated to Redis itself, so no sweep is needed; the
// high-water mark does not apply to this adapter.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed embedding cache
func NewRedis(client *redis.Client, settings domain.CacheSettings) *Redis {
	ttl := settings.TTL
	if ttl <= 0 {
		ttl = domain.DefaultCacheSettings().TTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns the entry for key
func (c *Redis) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	data, err := c.client.Get(ctx, embeddingPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores an entry with the cache TTL
func (c *Redis) Put(ctx context.Context, key string, entry *domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := c.client.Set(ctx, embeddingPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

// Delete removes a single entry
func (c *Redis) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, embeddingPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Clear removes all embedding entries, leaving other keyspaces alone
func (c *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, embeddingPrefix+"*", 500).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Size returns the current number of embedding entries
func (c *Redis) Size(ctx context.Context) (int, error) {
	var cursor uint64
	count := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, embeddingPrefix+"*", 500).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
