package driven

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// DocumentStore is the opaque document index this core consumes.
// The store's own similarity scores are treated as approximate; callers
// recompute cosine similarity locally before ranking.
type DocumentStore interface {
	// Query performs an exact-match/filtered query
	Query(ctx context.Context, filters map[string]string, limit int) (*domain.QueryResult, error)

	// QueryNearest returns the k documents nearest to embedding under the
	// given filters, ordered by the store's own approximate score
	QueryNearest(ctx context.Context, embedding []float32, k int, filters map[string]string) (*domain.QueryResult, error)

	// GetByIDs fetches documents by id. Missing ids are skipped, not an error.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error)

	// Index creates or replaces documents
	Index(ctx context.Context, docs []*domain.Document) error

	// HealthCheck verifies the store is available
	HealthCheck(ctx context.Context) error
}
