package mocks

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// MockEmbeddingProvider is a deterministic in-memory EmbeddingProvider.
// Vectors are bag-of-words hashes, so texts sharing tokens score high on
// cosine similarity and unrelated texts score low - close enough to a real
// model for ranking tests.
type MockEmbeddingProvider struct {
	mu         sync.Mutex
	dimensions int
	model      string
	tokens     int
	calls      int
	failNext   bool
	failTexts  map[string]bool
	closed     bool
}

// NewMockEmbeddingProvider creates a new MockEmbeddingProvider
func NewMockEmbeddingProvider() *MockEmbeddingProvider {
	return &MockEmbeddingProvider{
		dimensions: 128,
		model:      "mock-embedding-model",
		tokens:     3,
		failTexts:  make(map[string]bool),
	}
}

func (m *MockEmbeddingProvider) Generate(_ context.Context, text string) (*domain.EmbeddingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failNext {
		m.failNext = false
		return nil, fmt.Errorf("%w: injected failure", domain.ErrProviderUnavailable)
	}
	if m.failTexts[text] {
		return nil, fmt.Errorf("%w: injected failure for %q", domain.ErrProviderUnavailable, text)
	}

	return &domain.EmbeddingResult{
		Vector: m.generateEmbedding(text),
		Tokens: m.tokens,
	}, nil
}

func (m *MockEmbeddingProvider) Model() string {
	return m.model
}

func (m *MockEmbeddingProvider) HealthCheck(_ context.Context) error {
	return nil
}

func (m *MockEmbeddingProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// generateEmbedding hashes each token into a dimension and counts hits
func (m *MockEmbeddingProvider) generateEmbedding(text string) []float32 {
	embedding := make([]float32, m.dimensions)
	for _, token := range domain.Tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		embedding[h.Sum32()%uint32(m.dimensions)]++
	}
	return embedding
}

// Helper methods for testing

// Calls reports how many Generate calls were made
func (m *MockEmbeddingProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close was called
func (m *MockEmbeddingProvider) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetFailNext makes the next Generate call fail
func (m *MockEmbeddingProvider) SetFailNext() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = true
}

// FailOn makes every Generate call for text fail
func (m *MockEmbeddingProvider) FailOn(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failTexts[text] = true
}

// SetModel overrides the reported model name
func (m *MockEmbeddingProvider) SetModel(model string) {
	m.model = model
}

// SetDimensions overrides the embedding dimensionality
func (m *MockEmbeddingProvider) SetDimensions(dim int) {
	m.dimensions = dim
}
