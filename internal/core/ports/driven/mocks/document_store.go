package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// MockDocumentStore is an in-memory DocumentStore for testing.
// QueryNearest ranks by real cosine similarity so ranking behavior can be
// asserted end to end.
type MockDocumentStore struct {
	mu       sync.Mutex
	docs     map[string]*domain.Document
	order    []string
	failWith error
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentStore) Query(_ context.Context, filters map[string]string, limit int) (*domain.QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	var docs []*domain.Document
	for _, id := range m.order {
		doc := m.docs[id]
		if !matchesFilters(doc, filters) {
			continue
		}
		docs = append(docs, doc)
		if limit > 0 && len(docs) == limit {
			break
		}
	}

	return &domain.QueryResult{
		Documents: docs,
		Total:     len(docs),
		Took:      time.Millisecond,
	}, nil
}

func (m *MockDocumentStore) QueryNearest(_ context.Context, embedding []float32, k int, filters map[string]string) (*domain.QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	var docs []*domain.Document
	for _, id := range m.order {
		doc := m.docs[id]
		if !doc.HasEmbedding() || !matchesFilters(doc, filters) {
			continue
		}
		docs = append(docs, doc)
	}

	scores := make(map[string]float64, len(docs))
	for _, doc := range docs {
		scores[doc.ID] = domain.Cosine(embedding, doc.Embedding)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return scores[docs[i].ID] > scores[docs[j].ID]
	})

	total := len(docs)
	if len(docs) > k {
		docs = docs[:k]
	}

	var maxScore float64
	if len(docs) > 0 {
		maxScore = scores[docs[0].ID]
	}

	return &domain.QueryResult{
		Documents: docs,
		Total:     total,
		Took:      time.Millisecond,
		MaxScore:  maxScore,
	}, nil
}

func (m *MockDocumentStore) GetByIDs(_ context.Context, ids []string) ([]*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	var docs []*domain.Document
	for _, id := range ids {
		if doc, ok := m.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockDocumentStore) Index(_ context.Context, docs []*domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	for _, doc := range docs {
		if _, ok := m.docs[doc.ID]; !ok {
			m.order = append(m.order, doc.ID)
		}
		m.docs[doc.ID] = doc
	}
	return nil
}

func (m *MockDocumentStore) HealthCheck(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failWith
}

// Helper methods for testing

// SetFailWith makes every operation return err until reset with nil
func (m *MockDocumentStore) SetFailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Count reports how many documents are stored
func (m *MockDocumentStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

func matchesFilters(doc *domain.Document, filters map[string]string) bool {
	for field, want := range filters {
		var got string
		switch field {
		case "topic":
			got = doc.Topic
		case "subject_area":
			got = doc.SubjectArea
		case "difficulty":
			got = string(doc.Difficulty)
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}
