package driving

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// SimilarityService finds documents similar to a query text
type SimilarityService interface {
	// FindSimilar embeds the query, retrieves the store's nearest documents
	// and returns them with locally recomputed scores, ordered descending
	FindSimilar(ctx context.Context, queryText string, cfg domain.SearchConfig) ([]*domain.SimilarityMatch, error)
}
