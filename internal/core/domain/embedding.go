package domain

import "time"

// EmbeddingResult is the normalized output of a single provider call.
// All backends are mapped into this one shape.
type EmbeddingResult struct {
	Vector []float32 `json:"vector"`
	Tokens int       `json:"tokens,omitempty"`
}

// BatchError records a per-item failure inside a batch operation
type BatchError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of a batch embedding run. Vectors correspond
// positionally to the input texts; failed slots are nil and carry a matching
// entry in Errors. Callers must inspect both.
type BatchResult struct {
	Vectors     [][]float32   `json:"vectors"`
	Errors      []BatchError  `json:"errors,omitempty"`
	TotalTokens int           `json:"total_tokens"`
	Took        time.Duration `json:"took"`
}

// CacheStats reports embedding cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// IndexReport is the outcome of a batch embed-and-index run
type IndexReport struct {
	Indexed int           `json:"indexed"`
	Errors  []BatchError  `json:"errors,omitempty"`
	Took    time.Duration `json:"took"`
}
