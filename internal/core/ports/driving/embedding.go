package driving

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// EmbeddingService handles embedding generation with caching
type EmbeddingService interface {
	// Embed returns the embedding for text, serving from cache when possible
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts in fixed-size chunks with per-item failure
	// isolation. Result slots correspond positionally to the input.
	EmbedBatch(ctx context.Context, texts []string) (*domain.BatchResult, error)

	// EmbedDocument embeds a question document using the canonical field
	// concatenation rule. Reindexing tools must reproduce this exactly.
	EmbedDocument(ctx context.Context, question, answer, explanation string, keywords []string) ([]float32, error)

	// UpdateConfig swaps the active provider settings. The entire cache is
	// invalidated as part of the switch.
	UpdateConfig(ctx context.Context, settings domain.EmbeddingSettings) error

	// Stats reports cache hit/miss counters and current size
	Stats(ctx context.Context) (*domain.CacheStats, error)

	// HealthCheck verifies the active provider is reachable
	HealthCheck(ctx context.Context) error
}
