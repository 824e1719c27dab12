package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driving"
)

// Ensure indexerService implements IndexerService
var _ driving.IndexerService = (*indexerService)(nil)

// indexerService embeds and indexes question documents. Embedding goes
// through EmbedDocument so indexed vectors always follow the canonical
// concatenation rule.
type indexerService struct {
	embedder driving.EmbeddingService
	store    driven.DocumentStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewIndexerService creates a new IndexerService
func NewIndexerService(
	embedder driving.EmbeddingService,
	store driven.DocumentStore,
	logger *slog.Logger,
) driving.IndexerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &indexerService{
		embedder: embedder,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// IndexDocuments attaches embeddings and writes the documents to the store.
// Embedding failures are isolated per document; only the final store write
// is all-or-nothing.
func (s *indexerService) IndexDocuments(ctx context.Context, docs []*domain.Document) (*domain.IndexReport, error) {
	start := s.now()
	report := &domain.IndexReport{}

	indexable := make([]*domain.Document, 0, len(docs))
	for i, doc := range docs {
		vector, err := s.embedder.EmbedDocument(ctx, doc.Text, doc.Answer, doc.Explanation, doc.Keywords)
		if err != nil {
			s.logger.Warn("embedding failed, document skipped", "index", i, "id", doc.ID, "error", err)
			report.Errors = append(report.Errors, domain.BatchError{
				Index:  i,
				Reason: err.Error(),
			})
			continue
		}

		doc.Embedding = vector
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		doc.UpdatedAt = s.now()
		indexable = append(indexable, doc)
	}

	if len(indexable) > 0 {
		if err := s.store.Index(ctx, indexable); err != nil {
			report.Took = s.now().Sub(start)
			return report, err
		}
	}

	report.Indexed = len(indexable)
	report.Took = s.now().Sub(start)
	return report, nil
}
