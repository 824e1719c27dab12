package driven

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// EmbeddingProvider issues a single embedding request to one backend.
// Implementations own only their request/response mapping; caching, batching
// and retry policy live in the embedding service.
type EmbeddingProvider interface {
	// Generate embeds one text. Transport failures and non-success statuses
	// surface as domain.ErrProviderUnavailable; unusable payload shapes as
	// domain.ErrMalformedResponse.
	Generate(ctx context.Context, text string) (*domain.EmbeddingResult, error)

	// Model returns the model identifier being used
	Model() string

	// HealthCheck verifies the backend is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the provider
	Close() error
}
