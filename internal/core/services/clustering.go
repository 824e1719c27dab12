package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driving"
)

// Ensure clusteringService implements ClusteringService
var _ driving.ClusteringService = (*clusteringService)(nil)

const (
	// maxKMeansIterations caps Lloyd's iterations regardless of convergence
	maxKMeansIterations = 10

	// clusterKeywordCount is how many keywords each cluster reports
	clusterKeywordCount = 5

	// corpusFetchLimit bounds the whole-corpus fetch when no ids are given
	corpusFetchLimit = 10000
)

// clusteringService implements the ClusteringService interface using
// Lloyd's k-means with cosine similarity as the affinity measure
type clusteringService struct {
	store  driven.DocumentStore
	logger *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewClusteringService creates a new ClusteringService.
// The random source seeds centroid initialization; inject a seeded one for
// reproducible tests.
func NewClusteringService(
	store driven.DocumentStore,
	rnd *rand.Rand,
	logger *slog.Logger,
) driving.ClusteringService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &clusteringService{
		store:  store,
		rnd:    rnd,
		logger: logger,
	}
}

// Cluster runs k-means over the selected corpus. Documents without an
// embedding are silently excluded; an empty embedded corpus yields an empty
// result, not an error.
func (s *clusteringService) Cluster(ctx context.Context, documentIDs []string, k int) ([]*domain.Cluster, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1", domain.ErrInvalidInput)
	}

	docs, err := s.fetchCorpus(ctx, documentIDs)
	if err != nil {
		return nil, err
	}

	embedded := make([]*domain.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.HasEmbedding() {
			embedded = append(embedded, doc)
		}
	}
	if len(embedded) == 0 {
		return []*domain.Cluster{}, nil
	}

	if k > len(embedded) {
		k = len(embedded)
	}

	centroids := s.initialCentroids(embedded, k)
	assignments := make([]int, len(embedded))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false

		// Assign each point to the centroid with the highest similarity
		for i, doc := range embedded {
			best := 0
			bestSim := domain.Cosine(doc.Embedding, centroids[0])
			for c := 1; c < k; c++ {
				if sim := domain.Cosine(doc.Embedding, centroids[c]); sim > bestSim {
					best = c
					bestSim = sim
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Recompute centroids as the mean of their assigned embeddings.
		// A cluster that lost all members keeps its old centroid; it is
		// dropped from the final result rather than re-seeded.
		for c := 0; c < k; c++ {
			var members [][]float32
			for i, a := range assignments {
				if a == c {
					members = append(members, embedded[i].Embedding)
				}
			}
			if centroid := domain.Centroid(members); centroid != nil {
				centroids[c] = centroid
			}
		}
	}

	return buildClusters(embedded, assignments, centroids, k), nil
}

// fetchCorpus loads the documents to cluster: the given ids, or the whole
// corpus when none are supplied
func (s *clusteringService) fetchCorpus(ctx context.Context, documentIDs []string) ([]*domain.Document, error) {
	if len(documentIDs) > 0 {
		return s.store.GetByIDs(ctx, documentIDs)
	}
	result, err := s.store.Query(ctx, nil, corpusFetchLimit)
	if err != nil {
		return nil, err
	}
	return result.Documents, nil
}

// initialCentroids copies k embeddings sampled uniformly without replacement
func (s *clusteringService) initialCentroids(docs []*domain.Document, k int) [][]float32 {
	s.mu.Lock()
	perm := s.rnd.Perm(len(docs))
	s.mu.Unlock()

	centroids := make([][]float32, k)
	for c := 0; c < k; c++ {
		src := docs[perm[c]].Embedding
		centroids[c] = make([]float32, len(src))
		copy(centroids[c], src)
	}
	return centroids
}

// buildClusters groups documents by final assignment and summarizes each
// surviving cluster. Empty clusters are dropped.
func buildClusters(docs []*domain.Document, assignments []int, centroids [][]float32, k int) []*domain.Cluster {
	clusters := make([]*domain.Cluster, 0, k)

	for c := 0; c < k; c++ {
		var members []*domain.Document
		for i, a := range assignments {
			if a == c {
				members = append(members, docs[i])
			}
		}
		if len(members) == 0 {
			continue
		}

		texts := make([]string, 0, len(members)*3)
		var tierSum float64
		for _, m := range members {
			texts = append(texts, m.Text, strings.Join(m.Keywords, " "), m.Topic)
			tierSum += m.Difficulty.Tier()
		}

		clusters = append(clusters, &domain.Cluster{
			ID:                uuid.NewString(),
			Centroid:          centroids[c],
			Members:           members,
			Keywords:          domain.TopKeywords(clusterKeywordCount, texts...),
			AverageDifficulty: tierSum / float64(len(members)),
		})
	}

	return clusters
}
