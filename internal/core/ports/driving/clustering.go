package driving

import (
	"context"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// ClusteringService groups the embedded corpus into labeled clusters
type ClusteringService interface {
	// Cluster runs k-means over the documents with the given ids, or the
	// whole embedded corpus when ids is empty. Documents without an
	// embedding are silently excluded. Returns between 0 and k clusters.
	Cluster(ctx context.Context, documentIDs []string, k int) ([]*domain.Cluster, error)
}
