package driving

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// RecommendationService suggests the next questions for a learner
type RecommendationService interface {
	// Recommend builds a centroid from the answered history and returns
	// candidates near it, optionally diversity-filtered and re-sorted by
	// difficulty progression. An empty history falls back to a neutral
	// random sample; it never errors for lack of history.
	Recommend(ctx context.Context, answeredIDs []string, cfg domain.RecommendationConfig) ([]*domain.SimilarityMatch, error)
}
