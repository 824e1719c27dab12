package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// filterColumns whitelists the fields exposed to store filters
var filterColumns = map[string]string{
	"topic":        "topic",
	"subject_area": "subject_area",
	"difficulty":   "difficulty",
}

// DocumentStore implements driven.DocumentStore using PostgreSQL.
// Nearest-neighbor queries rank embedded rows in the application by cosine
// similarity; this keeps the store free of vector extensions and is fine
// for corpora in the tens of thousands.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, text, answer, explanation, topic, subject_area, difficulty, embedding, keywords, created_at, updated_at`

// Query performs an exact-match/filtered query
func (s *DocumentStore) Query(ctx context.Context, filters map[string]string, limit int) (*domain.QueryResult, error) {
	start := time.Now()

	where, args, err := buildWhere(filters)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM questions%s ORDER BY created_at DESC LIMIT $%d`,
		documentColumns, where, len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}

	return &domain.QueryResult{
		Documents: docs,
		Total:     len(docs),
		Took:      time.Since(start),
	}, nil
}

// QueryNearest ranks embedded rows by cosine similarity to the query vector
func (s *DocumentStore) QueryNearest(ctx context.Context, embedding []float32, k int, filters map[string]string) (*domain.QueryResult, error) {
	start := time.Now()

	where, args, err := buildWhere(filters)
	if err != nil {
		return nil, err
	}
	if where == "" {
		where = " WHERE embedding IS NOT NULL"
	} else {
		where += " AND embedding IS NOT NULL"
	}

	query := fmt.Sprintf(`SELECT %s FROM questions%s`, documentColumns, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(docs))
	for _, doc := range docs {
		scores[doc.ID] = domain.Cosine(embedding, doc.Embedding)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return scores[docs[i].ID] > scores[docs[j].ID]
	})

	total := len(docs)
	if len(docs) > k {
		docs = docs[:k]
	}

	var maxScore float64
	if len(docs) > 0 {
		maxScore = scores[docs[0].ID]
	}

	return &domain.QueryResult{
		Documents: docs,
		Total:     total,
		Took:      time.Since(start),
		MaxScore:  maxScore,
	}, nil
}

// GetByIDs fetches documents by id. Missing ids are skipped.
func (s *DocumentStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = ANY($1)`, documentColumns)
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// Index creates or replaces documents in a single transaction
func (s *DocumentStore) Index(ctx context.Context, docs []*domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO questions (id, text, answer, explanation, topic, subject_area, difficulty, embedding, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			answer = EXCLUDED.answer,
			explanation = EXCLUDED.explanation,
			topic = EXCLUDED.topic,
			subject_area = EXCLUDED.subject_area,
			difficulty = EXCLUDED.difficulty,
			embedding = EXCLUDED.embedding,
			keywords = EXCLUDED.keywords,
			updated_at = EXCLUDED.updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		embeddingJSON, err := marshalNullable(doc.Embedding)
		if err != nil {
			return err
		}
		keywords := doc.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		keywordsJSON, err := json.Marshal(keywords)
		if err != nil {
			return err
		}

		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		updatedAt := doc.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}

		if _, err := stmt.ExecContext(ctx,
			doc.ID,
			doc.Text,
			doc.Answer,
			doc.Explanation,
			doc.Topic,
			doc.SubjectArea,
			string(doc.Difficulty),
			embeddingJSON,
			keywordsJSON,
			createdAt,
			updatedAt,
		); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// HealthCheck verifies the database is reachable
func (s *DocumentStore) HealthCheck(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// buildWhere converts store filters into a WHERE clause over whitelisted
// columns. Unknown filter fields are rejected.
func buildWhere(filters map[string]string) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		if _, ok := filterColumns[key]; !ok {
			return "", nil, fmt.Errorf("%w: unknown filter field %q", domain.ErrInvalidInput, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clause := " WHERE "
	var args []any
	for i, key := range keys {
		if i > 0 {
			clause += " AND "
		}
		clause += fmt.Sprintf("%s = $%d", filterColumns[key], i+1)
		args = append(args, filters[key])
	}
	return clause, args, nil
}

// scanDocuments reads rows into documents
func scanDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document

	for rows.Next() {
		var (
			doc          domain.Document
			difficulty   string
			embeddingRaw []byte
			keywordsRaw  []byte
		)
		if err := rows.Scan(
			&doc.ID,
			&doc.Text,
			&doc.Answer,
			&doc.Explanation,
			&doc.Topic,
			&doc.SubjectArea,
			&difficulty,
			&embeddingRaw,
			&keywordsRaw,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}

		doc.Difficulty = domain.Difficulty(difficulty)
		if len(embeddingRaw) > 0 {
			if err := json.Unmarshal(embeddingRaw, &doc.Embedding); err != nil {
				return nil, fmt.Errorf("failed to unmarshal embedding for %s: %w", doc.ID, err)
			}
		}
		if len(keywordsRaw) > 0 {
			if err := json.Unmarshal(keywordsRaw, &doc.Keywords); err != nil {
				return nil, fmt.Errorf("failed to unmarshal keywords for %s: %w", doc.ID, err)
			}
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return docs, nil
}

// marshalNullable marshals a vector, or returns nil for SQL NULL when empty
func marshalNullable(embedding []float32) (any, error) {
	if len(embedding) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return nil, err
	}
	return data, nil
}
