package services

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driving"
)

// Ensure recommendationService implements RecommendationService
var _ driving.RecommendationService = (*recommendationService)(nil)

const (
	// neutralScore tags fallback results that carry no similarity signal
	neutralScore = 0.5

	// progressionStep nudges the difficulty target above the history mean
	progressionStep = 0.2

	// progressionTieband treats difficulty distances closer than this as a
	// near-tie, broken by similarity score
	progressionTieband = 0.1
)

// recommendationService implements the RecommendationService interface.
// It works entirely from embeddings already stored on documents, so a
// recommendation issues no provider calls - only store queries.
type recommendationService struct {
	store  driven.DocumentStore
	logger *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRecommendationService creates a new RecommendationService.
// The random source drives the empty-history fallback sample; inject a
// seeded one for reproducible tests.
func NewRecommendationService(
	store driven.DocumentStore,
	rnd *rand.Rand,
	logger *slog.Logger,
) driving.RecommendationService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &recommendationService{
		store:  store,
		rnd:    rnd,
		logger: logger,
	}
}

// Recommend returns the next questions for a learner based on their
// answered history. Empty or unembeddable history falls back to a neutral
// random sample rather than an empty result.
func (s *recommendationService) Recommend(ctx context.Context, answeredIDs []string, cfg domain.RecommendationConfig) ([]*domain.SimilarityMatch, error) {
	// Apply defaults
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = domain.DefaultRecommendationConfig().MaxResults
	}

	exclude := make(map[string]struct{}, len(answeredIDs)+len(cfg.ExcludeIDs))
	for _, id := range answeredIDs {
		exclude[id] = struct{}{}
	}
	for _, id := range cfg.ExcludeIDs {
		exclude[id] = struct{}{}
	}

	if len(answeredIDs) == 0 {
		return s.fallbackSample(ctx, cfg, exclude)
	}

	answered, err := s.store.GetByIDs(ctx, answeredIDs)
	if err != nil {
		return nil, err
	}

	embeddings := make([][]float32, 0, len(answered))
	for _, doc := range answered {
		if doc.HasEmbedding() {
			embeddings = append(embeddings, doc.Embedding)
		}
	}

	centroid := domain.Centroid(embeddings)
	if centroid == nil {
		// History exists but carries no vectors - degrade to the sample
		return s.fallbackSample(ctx, cfg, exclude)
	}

	// Over-fetch so exclusions cannot starve the result set
	k := 2*cfg.MaxResults + len(exclude)
	result, err := s.store.QueryNearest(ctx, centroid, k, topicFilter(cfg.TopicFocus))
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.SimilarityMatch, 0, len(result.Documents))
	for _, doc := range result.Documents {
		if _, skip := exclude[doc.ID]; skip {
			continue
		}
		if !doc.HasEmbedding() {
			continue
		}
		candidates = append(candidates, &domain.SimilarityMatch{
			Document:    doc,
			Score:       clampScore(domain.Cosine(centroid, doc.Embedding)),
			Explanation: "close to your recent practice",
		})
	}

	// Local score is authoritative, not the store's approximate ordering
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if cfg.DifficultyProgression {
		resortByProgression(candidates, targetDifficulty(answered))
	}

	if cfg.DiversityFactor > 0 {
		candidates = diversify(candidates)
	}

	if len(candidates) > cfg.MaxResults {
		candidates = candidates[:cfg.MaxResults]
	}
	return candidates, nil
}

// fallbackSample returns a shuffled neutral sample, so recommendations never
// silently return an empty set when any content exists
func (s *recommendationService) fallbackSample(ctx context.Context, cfg domain.RecommendationConfig, exclude map[string]struct{}) ([]*domain.SimilarityMatch, error) {
	limit := 2*cfg.MaxResults + len(exclude)
	result, err := s.store.Query(ctx, topicFilter(cfg.TopicFocus), limit)
	if err != nil {
		return nil, err
	}

	docs := make([]*domain.Document, 0, len(result.Documents))
	for _, doc := range result.Documents {
		if _, skip := exclude[doc.ID]; skip {
			continue
		}
		docs = append(docs, doc)
	}

	s.mu.Lock()
	s.rnd.Shuffle(len(docs), func(i, j int) {
		docs[i], docs[j] = docs[j], docs[i]
	})
	s.mu.Unlock()

	if len(docs) > cfg.MaxResults {
		docs = docs[:cfg.MaxResults]
	}

	matches := make([]*domain.SimilarityMatch, 0, len(docs))
	for _, doc := range docs {
		matches = append(matches, &domain.SimilarityMatch{
			Document:    doc,
			Score:       neutralScore,
			Explanation: "exploratory pick",
		})
	}
	return matches, nil
}

// targetDifficulty computes the progression target: slightly above the
// answered history's mean tier, capped at the hardest tier
func targetDifficulty(answered []*domain.Document) float64 {
	if len(answered) == 0 {
		return domain.DifficultyMedium.Tier()
	}
	var sum float64
	for _, doc := range answered {
		sum += doc.Difficulty.Tier()
	}
	return math.Min(domain.DifficultyHard.Tier(), sum/float64(len(answered))+progressionStep)
}

// resortByProgression orders candidates by closeness to the target tier,
// breaking near-ties by similarity score descending
func resortByProgression(candidates []*domain.SimilarityMatch, target float64) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di := math.Abs(candidates[i].Document.Difficulty.Tier() - target)
		dj := math.Abs(candidates[j].Document.Difficulty.Tier() - target)
		if math.Abs(di-dj) < progressionTieband {
			return candidates[i].Score > candidates[j].Score
		}
		return di < dj
	})
}

// diversify round-robins one pick per topic bucket per round, so no single
// topic dominates the top results even if it scores highest on raw
// similarity. Bucket order and order within buckets follow the incoming
// candidate order.
func diversify(candidates []*domain.SimilarityMatch) []*domain.SimilarityMatch {
	var topics []string
	buckets := make(map[string][]*domain.SimilarityMatch)

	for _, c := range candidates {
		topic := c.Document.Topic
		if _, ok := buckets[topic]; !ok {
			topics = append(topics, topic)
		}
		buckets[topic] = append(buckets[topic], c)
	}

	diversified := make([]*domain.SimilarityMatch, 0, len(candidates))
	for len(diversified) < len(candidates) {
		for _, topic := range topics {
			if len(buckets[topic]) == 0 {
				continue
			}
			diversified = append(diversified, buckets[topic][0])
			buckets[topic] = buckets[topic][1:]
		}
	}
	return diversified
}

// topicFilter builds the store filter for an optional topic focus
func topicFilter(topic string) map[string]string {
	if topic == "" {
		return nil
	}
	return map[string]string{"topic": topic}
}
