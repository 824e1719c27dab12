package runtime

import (
	"context"
	"sync"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Services holds the runtime-swappable embedding provider and its settings.
// The active provider can be replaced via the settings API while requests
// are in flight; a swap is a full cache-invalidation boundary, which the
// embedding service enforces when it drives the swap.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	provider driven.EmbeddingProvider
	settings domain.EmbeddingSettings
}

// NewServices creates a new Services registry
func NewServices(settings domain.EmbeddingSettings) *Services {
	return &Services{settings: settings}
}

// EmbeddingProvider returns the current provider (may be nil)
func (s *Services) EmbeddingProvider() driven.EmbeddingProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Settings returns a snapshot of the current embedding settings
func (s *Services) Settings() domain.EmbeddingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetEmbeddingProvider swaps the provider and settings atomically.
// Closes the old provider if present.
func (s *Services) SetEmbeddingProvider(p driven.EmbeddingProvider, settings domain.EmbeddingSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider != nil {
		_ = s.provider.Close()
	}

	s.provider = p
	s.settings = settings
}

// ValidateAndSetProvider verifies connectivity before swapping the provider
func (s *Services) ValidateAndSetProvider(ctx context.Context, p driven.EmbeddingProvider, settings domain.EmbeddingSettings) error {
	if p == nil {
		s.SetEmbeddingProvider(nil, settings)
		return nil
	}

	if err := p.HealthCheck(ctx); err != nil {
		_ = p.Close()
		return err
	}

	s.SetEmbeddingProvider(p, settings)
	return nil
}

// Close shuts down the active provider
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider != nil {
		_ = s.provider.Close()
		s.provider = nil
	}
	return nil
}
