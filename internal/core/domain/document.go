package domain

import "time"

// Difficulty is the difficulty tier of a question document
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Tier maps a difficulty to its numeric tier (easy=1, medium=2, hard=3).
// Unknown values map to the middle tier.
func (d Difficulty) Tier() float64 {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

// Document represents an indexed question document.
// Documents are created by the ingestion collaborator; this core only
// attaches embeddings and reads them back.
type Document struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Answer      string     `json:"answer,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Topic       string     `json:"topic"`
	SubjectArea string     `json:"subject_area"`
	Difficulty  Difficulty `json:"difficulty"`
	Embedding   []float32  `json:"embedding,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasEmbedding reports whether the document carries a usable vector.
// Documents without one are excluded from vector queries but remain valid
// for exact-match queries.
func (d *Document) HasEmbedding() bool {
	return d != nil && len(d.Embedding) > 0
}

// SimilarityMatch is a document paired with a locally recomputed similarity
// score in [0,1] and a best-effort human-readable explanation.
// The explanation is advisory only and never used for ranking.
type SimilarityMatch struct {
	Document    *Document `json:"document"`
	Score       float64   `json:"score"`
	Explanation string    `json:"explanation,omitempty"`
}

// QueryResult is the shape returned by document store queries
type QueryResult struct {
	Documents []*Document   `json:"documents"`
	Total     int           `json:"total"`
	Took      time.Duration `json:"took"`
	MaxScore  float64       `json:"max_score"`
}

// Cluster is one k-means cluster over the embedded corpus
type Cluster struct {
	ID                string      `json:"id"`
	Centroid          []float32   `json:"centroid"`
	Members           []*Document `json:"members"`
	Keywords          []string    `json:"keywords"`
	AverageDifficulty float64     `json:"average_difficulty"`
}
