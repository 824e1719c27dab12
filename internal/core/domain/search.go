package domain

// SearchConfig configures a similarity search
type SearchConfig struct {
	// K is the number of nearest documents to retrieve (minimum 1)
	K int `json:"k"`

	// Threshold drops matches scoring below it when > 0
	Threshold float64 `json:"threshold,omitempty"`

	// Filters restricts candidates by exact field match (e.g. topic, subject_area)
	Filters map[string]string `json:"filters,omitempty"`

	// Rerank re-sorts results by the locally recomputed score
	Rerank bool `json:"rerank"`
}

// DefaultSearchConfig returns sensible defaults
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{K: 10}
}

// RecommendationConfig configures a recommendation request
type RecommendationConfig struct {
	// MaxResults bounds the final result set (minimum 1)
	MaxResults int `json:"max_results"`

	// DiversityFactor enables topic round-robin spreading when > 0
	DiversityFactor float64 `json:"diversity_factor,omitempty"`

	// DifficultyProgression re-sorts candidates toward a slightly harder
	// target than the answered history's mean tier
	DifficultyProgression bool `json:"difficulty_progression"`

	// TopicFocus restricts the empty-history fallback sample to one topic
	TopicFocus string `json:"topic_focus,omitempty"`

	// ExcludeIDs removes specific documents from the candidate set
	ExcludeIDs []string `json:"exclude_ids,omitempty"`
}

// DefaultRecommendationConfig returns sensible defaults
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{MaxResults: 10}
}
