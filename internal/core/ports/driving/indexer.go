package driving

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// IndexerService embeds and indexes question documents
type IndexerService interface {
	// IndexDocuments attaches embeddings to the given documents and writes
	// them to the store. A failure on one document does not abort the run;
	// it is recorded in the report and processing continues.
	IndexDocuments(ctx context.Context, docs []*domain.Document) (*domain.IndexReport, error)
}
