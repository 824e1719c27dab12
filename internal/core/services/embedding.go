package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driving"
	"github.com/brightpath-labs/quizvec-core/internal/runtime"
)

// Ensure embeddingService implements EmbeddingService
var _ driving.EmbeddingService = (*embeddingService)(nil)

// batchChunkDelay paces batch chunks to respect provider rate limits.
// It is a heuristic, not a correctness requirement.
const batchChunkDelay = 200 * time.Millisecond

// defaultBatchSize is used when settings carry no batch size
const defaultBatchSize = 10

// embeddingService orchestrates the provider and the cache.
// Vectors are cached only after a fully validated provider response, so a
// failed embed never leaves the cache inconsistent.
type embeddingService struct {
	services *runtime.Services
	cache    driven.EmbeddingCache
	factory  driven.ProviderFactory
	logger   *slog.Logger
	limiter  *rate.Limiter

	now func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewEmbeddingService creates a new EmbeddingService.
// The active provider is resolved dynamically via runtime.Services so that
// UpdateConfig can swap it without rebuilding dependents.
func NewEmbeddingService(
	services *runtime.Services,
	cache driven.EmbeddingCache,
	factory driven.ProviderFactory,
	logger *slog.Logger,
) driving.EmbeddingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingService{
		services: services,
		cache:    cache,
		factory:  factory,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Every(batchChunkDelay), 1),
		now:      time.Now,
	}
}

// Embed returns the embedding for text, serving from cache when possible
func (s *embeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, _, err := s.embedOne(ctx, text)
	return vector, err
}

// embedOne is the shared cache-through path. The second return value is the
// provider-reported token count; cache hits report zero.
func (s *embeddingService) embedOne(ctx context.Context, text string) ([]float32, int, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return nil, 0, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}

	settings := s.services.Settings()
	key := domain.CacheKey(normalized, settings.Model)

	entry, err := s.cache.Get(ctx, key)
	if err == nil {
		if entry.Model == settings.Model {
			s.hits.Add(1)
			return entry.Vector, 0, nil
		}
		// Stale model under this key - purge lazily and fall through
		_ = s.cache.Delete(ctx, key)
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("cache lookup failed", "error", err)
	}
	s.misses.Add(1)

	provider := s.services.EmbeddingProvider()
	if provider == nil {
		return nil, 0, fmt.Errorf("%w: no embedding provider configured", domain.ErrConfiguration)
	}

	result, err := provider.Generate(ctx, normalized)
	if err != nil {
		return nil, 0, err
	}

	if len(result.Vector) == 0 {
		return nil, 0, fmt.Errorf("%w: empty vector", domain.ErrMalformedResponse)
	}
	if settings.Dimensions > 0 && len(result.Vector) != settings.Dimensions {
		return nil, 0, fmt.Errorf("%w: expected %d dimensions, got %d",
			domain.ErrMalformedResponse, settings.Dimensions, len(result.Vector))
	}

	if err := s.cache.Put(ctx, key, &domain.CacheEntry{
		Vector:    result.Vector,
		Model:     settings.Model,
		CreatedAt: s.now(),
	}); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}

	return result.Vector, result.Tokens, nil
}

// EmbedBatch embeds texts in fixed-size chunks with per-item failure
// isolation. Chunks are processed strictly in sequence; the limiter inserts
// a short pause between chunks to respect provider rate limits.
func (s *embeddingService) EmbedBatch(ctx context.Context, texts []string) (*domain.BatchResult, error) {
	start := s.now()
	result := &domain.BatchResult{
		Vectors: make([][]float32, len(texts)),
	}

	settings := s.services.Settings()
	chunkSize := settings.BatchSize
	if chunkSize <= 0 {
		chunkSize = defaultBatchSize
	}

	for offset := 0; offset < len(texts); offset += chunkSize {
		if offset > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				result.Took = s.now().Sub(start)
				return result, err
			}
		}

		end := offset + chunkSize
		if end > len(texts) {
			end = len(texts)
		}

		for i, text := range texts[offset:end] {
			index := offset + i
			vector, tokens, err := s.embedOne(ctx, text)
			if err != nil {
				s.logger.Warn("batch item failed", "index", index, "error", err)
				result.Errors = append(result.Errors, domain.BatchError{
					Index:  index,
					Reason: err.Error(),
				})
				continue
			}
			result.Vectors[index] = vector
			result.TotalTokens += tokens
		}
	}

	result.Took = s.now().Sub(start)
	return result, nil
}

// EmbedDocument embeds a question document. The concatenation below is the
// canonical "what gets embedded" rule and must be reproduced exactly by any
// reindexing tool.
func (s *embeddingService) EmbedDocument(ctx context.Context, question, answer, explanation string, keywords []string) ([]float32, error) {
	parts := make([]string, 0, 4)
	for _, p := range []string{question, answer, explanation, strings.Join(keywords, ", ")} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: document has no embeddable content", domain.ErrInvalidInput)
	}
	return s.Embed(ctx, strings.Join(parts, " "))
}

// UpdateConfig swaps the active provider. The swap is a full invalidation
// boundary: the cache is cleared so vectors from the old model are never
// mixed with the new one.
func (s *embeddingService) UpdateConfig(ctx context.Context, settings domain.EmbeddingSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	provider, err := s.factory.Create(settings)
	if err != nil {
		return err
	}

	if err := s.services.ValidateAndSetProvider(ctx, provider, settings); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("cache clear after config update failed", "error", err)
	}

	s.hits.Store(0)
	s.misses.Store(0)

	s.logger.Info("embedding provider updated",
		"provider", settings.Provider, "model", settings.Model)
	return nil
}

// Stats reports cache hit/miss counters and current size
func (s *embeddingService) Stats(ctx context.Context) (*domain.CacheStats, error) {
	size, err := s.cache.Size(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Size:   size,
	}, nil
}

// HealthCheck verifies the active provider is reachable
func (s *embeddingService) HealthCheck(ctx context.Context) error {
	provider := s.services.EmbeddingProvider()
	if provider == nil {
		return fmt.Errorf("%w: no embedding provider configured", domain.ErrConfiguration)
	}
	return provider.HealthCheck(ctx)
}
