package ai

import (
	"fmt"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Ensure Factory implements ProviderFactory
var _ driven.ProviderFactory = (*Factory)(nil)

// Factory creates embedding providers based on configuration
type Factory struct{}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds the provider selected by settings
func (f *Factory) Create(settings domain.EmbeddingSettings) (driven.EmbeddingProvider, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return NewOllamaEmbedding(settings.BaseURL, settings.Model, settings.Timeout)
	case domain.ProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL, settings.Timeout)
	case domain.ProviderHuggingFace:
		return NewHuggingFaceEmbedding(settings.APIKey, settings.Model, settings.BaseURL, settings.Timeout)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
