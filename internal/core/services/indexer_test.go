package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven/mocks"
)

func newTestIndexer(t *testing.T) (*indexerService, *mocks.MockEmbeddingProvider, *mocks.MockDocumentStore) {
	t.Helper()
	embedder, provider, _, _ := newTestEmbedding("model-a")
	store := mocks.NewMockDocumentStore()
	svc := NewIndexerService(embedder, store, nil).(*indexerService)
	return svc, provider, store
}

func TestIndexDocuments(t *testing.T) {
	svc, _, store := newTestIndexer(t)

	docs := []*domain.Document{
		{ID: "q1", Text: "What is 5 + 3?", Answer: "8", Keywords: []string{"addition"}},
		{Text: "What is 7 - 2?", Answer: "5"},
	}

	report, err := svc.IndexDocuments(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Indexed != 2 || len(report.Errors) != 0 {
		t.Fatalf("expected 2 indexed with no errors, got %d/%d", report.Indexed, len(report.Errors))
	}

	if !docs[0].HasEmbedding() || !docs[1].HasEmbedding() {
		t.Error("expected embeddings attached to both documents")
	}
	if docs[1].ID == "" {
		t.Error("expected a generated id for the document without one")
	}
	if docs[0].UpdatedAt.IsZero() {
		t.Error("expected the update timestamp to be set")
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 documents in the store, got %d", store.Count())
	}
}

func TestIndexDocuments_IsolatesEmbeddingFailures(t *testing.T) {
	svc, provider, store := newTestIndexer(t)
	provider.FailOn("broken question nope")

	docs := []*domain.Document{
		{ID: "ok1", Text: "What is 5 + 3?"},
		{ID: "bad", Text: "broken question", Answer: "nope"},
		{ID: "ok2", Text: "What is 7 - 2?"},
	}

	report, err := svc.IndexDocuments(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Indexed != 2 {
		t.Errorf("expected 2 indexed, got %d", report.Indexed)
	}
	if len(report.Errors) != 1 || report.Errors[0].Index != 1 {
		t.Fatalf("expected a single error at index 1, got %+v", report.Errors)
	}
	if store.Count() != 2 {
		t.Errorf("expected only the successful documents stored, got %d", store.Count())
	}
}

func TestIndexDocuments_EmptyDocumentIsSkipped(t *testing.T) {
	svc, _, store := newTestIndexer(t)

	report, err := svc.IndexDocuments(context.Background(), []*domain.Document{
		{ID: "empty"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Indexed != 0 || len(report.Errors) != 1 {
		t.Fatalf("expected the empty document to be reported, got %+v", report)
	}
	if store.Count() != 0 {
		t.Errorf("expected an empty store, got %d documents", store.Count())
	}
}

func TestIndexDocuments_StoreFailure(t *testing.T) {
	svc, _, store := newTestIndexer(t)
	store.SetFailWith(errors.New("bulk write refused"))

	_, err := svc.IndexDocuments(context.Background(), []*domain.Document{
		{ID: "q1", Text: "What is 5 + 3?"},
	})
	if err == nil {
		t.Error("expected the store error to surface")
	}
}
