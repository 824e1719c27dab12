package driven

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// EmbeddingCache is a content-addressed store mapping cache keys to
// embedding entries. Adapters enforce TTL expiry; model validation is the
// embedding service's job since only it knows the active model.
type EmbeddingCache interface {
	// Get returns the entry for key, or domain.ErrNotFound on a miss.
	// Expired entries count as misses and are purged lazily.
	Get(ctx context.Context, key string) (*domain.CacheEntry, error)

	// Put stores an entry under key
	Put(ctx context.Context, key string, entry *domain.CacheEntry) error

	// Delete removes a single entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries
	Clear(ctx context.Context) error

	// Size returns the current number of entries
	Size(ctx context.Context) (int, error)
}
