package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driving"
)

// Ensure similarityService implements SimilarityService
var _ driving.SimilarityService = (*similarityService)(nil)

// maxExplainedTerms caps how many shared words an explanation names
const maxExplainedTerms = 3

// similarityService implements the SimilarityService interface.
// The store's approximate scores are never exposed: cosine similarity is
// recomputed locally for every returned document as a defense against
// approximate or stale store scoring.
type similarityService struct {
	embedder driving.EmbeddingService
	store    driven.DocumentStore
	logger   *slog.Logger
}

// NewSimilarityService creates a new SimilarityService
func NewSimilarityService(
	embedder driving.EmbeddingService,
	store driven.DocumentStore,
	logger *slog.Logger,
) driving.SimilarityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &similarityService{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// FindSimilar embeds the query, retrieves the store's top-k nearest
// documents and returns them with locally recomputed scores
func (s *similarityService) FindSimilar(ctx context.Context, queryText string, cfg domain.SearchConfig) ([]*domain.SimilarityMatch, error) {
	// Apply defaults
	if cfg.K <= 0 {
		cfg.K = domain.DefaultSearchConfig().K
	}

	queryVector, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}

	result, err := s.store.QueryNearest(ctx, queryVector, cfg.K, cfg.Filters)
	if err != nil {
		return nil, err
	}

	matches := make([]*domain.SimilarityMatch, 0, len(result.Documents))
	for _, doc := range result.Documents {
		score := clampScore(domain.Cosine(queryVector, doc.Embedding))
		if cfg.Threshold > 0 && score < cfg.Threshold {
			continue
		}
		matches = append(matches, &domain.SimilarityMatch{
			Document:    doc,
			Score:       score,
			Explanation: explainMatch(queryText, doc),
		})
	}

	if cfg.Rerank {
		// Stable so ties keep the store's original order
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
	}

	return matches, nil
}

// clampScore maps a raw cosine into [0,1]
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// explainMatch builds a best-effort natural-language hint from the
// significant words the query and the document share. Advisory only,
// never used for ranking.
func explainMatch(queryText string, doc *domain.Document) string {
	queryWords := make(map[string]struct{})
	for _, w := range domain.SignificantWords(queryText) {
		queryWords[w] = struct{}{}
	}

	var shared []string
	for _, w := range domain.SignificantWords(doc.Text) {
		if _, ok := queryWords[w]; ok {
			shared = append(shared, w)
			if len(shared) == maxExplainedTerms {
				break
			}
		}
	}

	switch {
	case len(shared) > 0 && doc.Topic != "":
		return fmt.Sprintf("shares terms %s (topic: %s)", strings.Join(shared, ", "), doc.Topic)
	case len(shared) > 0:
		return fmt.Sprintf("shares terms %s", strings.Join(shared, ", "))
	case doc.Topic != "":
		return fmt.Sprintf("related to topic %s", doc.Topic)
	default:
		return "semantically similar"
	}
}
