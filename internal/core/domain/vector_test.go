package domain

import (
	"math"
	"testing"
)

func TestCosine_Symmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 5, 6}

	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("expected cosine(a,b) == cosine(b,a), got %v and %v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	a := []float32{0.5, -1.5, 2, 0.25}

	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected cosine(a,a) == 1, got %v", got)
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("expected 0 for mismatched dimensions, got %v", got)
	}
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("expected 0 for zero vector, got %v", got)
	}
	if got := Cosine(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty vectors, got %v", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	if got := Cosine(a, b); math.Abs(got) > 1e-9 {
		t.Errorf("expected 0 for orthogonal vectors, got %v", got)
	}
}

func TestCentroid(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{3, 4, 5},
	}

	centroid := Centroid(vectors)
	want := []float32{2, 3, 4}
	if len(centroid) != len(want) {
		t.Fatalf("expected %d dimensions, got %d", len(want), len(centroid))
	}
	for i := range want {
		if centroid[i] != want[i] {
			t.Errorf("dimension %d: expected %v, got %v", i, want[i], centroid[i])
		}
	}
}

func TestCentroid_SkipsEmptyAndMismatched(t *testing.T) {
	vectors := [][]float32{
		nil,
		{1, 2},
		{3, 4},
		{1, 2, 3}, // wrong dimensionality, skipped
	}

	centroid := Centroid(vectors)
	if len(centroid) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(centroid))
	}
	if centroid[0] != 2 || centroid[1] != 3 {
		t.Errorf("expected [2 3], got %v", centroid)
	}
}

func TestCentroid_Empty(t *testing.T) {
	if got := Centroid(nil); got != nil {
		t.Errorf("expected nil for no vectors, got %v", got)
	}
	if got := Centroid([][]float32{nil, {}}); got != nil {
		t.Errorf("expected nil for only empty vectors, got %v", got)
	}
}
