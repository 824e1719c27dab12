package domain

import "math"

// Cosine computes the cosine similarity of two vectors as
// dot(a,b) / (|a|*|b|). If the dimensions mismatch or either magnitude is
// zero the similarity is defined as 0; it never panics.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Centroid computes the element-wise mean of the given vectors, skipping
// empty ones. Returns nil when no non-empty vector is present. Vectors of
// differing dimensionality than the first are skipped.
func Centroid(vectors [][]float32) []float32 {
	var sum []float64
	count := 0

	for _, v := range vectors {
		if len(v) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			continue
		}
		for i := range v {
			sum[i] += float64(v[i])
		}
		count++
	}

	if count == 0 {
		return nil
	}

	centroid := make([]float32, len(sum))
	for i := range sum {
		centroid[i] = float32(sum[i] / float64(count))
	}
	return centroid
}
