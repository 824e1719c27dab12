package mocks

import (
	"sync"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// MockProviderFactory hands out MockEmbeddingProviders configured from the
// requested settings and remembers what it created.
type MockProviderFactory struct {
	mu       sync.Mutex
	created  []*MockEmbeddingProvider
	failWith error
}

// NewMockProviderFactory creates a new MockProviderFactory
func NewMockProviderFactory() *MockProviderFactory {
	return &MockProviderFactory{}
}

func (f *MockProviderFactory) Create(settings domain.EmbeddingSettings) (driven.EmbeddingProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	provider := NewMockEmbeddingProvider()
	provider.SetModel(settings.Model)
	if settings.Dimensions > 0 {
		provider.SetDimensions(settings.Dimensions)
	}
	f.created = append(f.created, provider)
	return provider, nil
}

// Helper methods for testing

// SetFailWith makes Create return err
func (f *MockProviderFactory) SetFailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

// Created returns the providers handed out so far
func (f *MockProviderFactory) Created() []*MockEmbeddingProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}
