package driven

import (
	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// ProviderFactory creates embedding providers from settings
type ProviderFactory interface {
	// Create builds the provider selected by settings.
	// Returns domain.ErrInvalidProvider for unknown providers and
	// domain.ErrConfiguration for missing credentials.
	Create(settings domain.EmbeddingSettings) (EmbeddingProvider, error)
}
