package searchstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*Client)(nil)

// Client implements driven.DocumentStore against the search engine's HTTP
// API. The engine is an opaque collaborator: this client only consumes its
// query contract and never relies on its approximate scores.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds search store connection configuration
type Config struct {
	// BaseURL is the search engine endpoint (e.g. http://localhost:9200)
	BaseURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new search store client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// storeResponse is the wire shape of every query response
type storeResponse struct {
	Documents []*domain.Document `json:"documents"`
	Total     int                `json:"total"`
	TookMs    int64              `json:"took_ms"`
	MaxScore  float64            `json:"max_score"`
}

// queryRequest is the body for filtered queries
type queryRequest struct {
	Filters map[string]string `json:"filters,omitempty"`
	Limit   int               `json:"limit"`
}

// knnRequest is the body for vector k-NN queries
type knnRequest struct {
	Embedding []float32         `json:"embedding"`
	K         int               `json:"k"`
	Filters   map[string]string `json:"filters,omitempty"`
}

// batchGetRequest is the body for batch document fetches
type batchGetRequest struct {
	IDs []string `json:"ids"`
}

// indexRequest is the body for bulk indexing
type indexRequest struct {
	Documents []*domain.Document `json:"documents"`
}

// Query performs an exact-match/filtered query
func (c *Client) Query(ctx context.Context, filters map[string]string, limit int) (*domain.QueryResult, error) {
	return c.search(ctx, "/search/query", queryRequest{Filters: filters, Limit: limit})
}

// QueryNearest performs a vector k-NN query
func (c *Client) QueryNearest(ctx context.Context, embedding []float32, k int, filters map[string]string) (*domain.QueryResult, error) {
	return c.search(ctx, "/search/knn", knnRequest{Embedding: embedding, K: k, Filters: filters})
}

// GetByIDs fetches documents by id via the batch-get endpoint
func (c *Client) GetByIDs(ctx context.Context, ids []string) ([]*domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	result, err := c.search(ctx, "/documents/batch-get", batchGetRequest{IDs: ids})
	if err != nil {
		return nil, err
	}
	return result.Documents, nil
}

// Index creates or replaces documents
func (c *Client) Index(ctx context.Context, docs []*domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := c.search(ctx, "/documents/bulk", indexRequest{Documents: docs})
	return err
}

// HealthCheck verifies the search engine is available
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: health check returned status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}
	return nil
}

// search POSTs a request body and decodes the common response shape
func (c *Client) search(ctx context.Context, path string, reqBody any) (*domain.QueryResult, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: store returned status %d: %s",
			domain.ErrStoreUnavailable, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var storeResp storeResponse
	if err := json.NewDecoder(resp.Body).Decode(&storeResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &domain.QueryResult{
		Documents: storeResp.Documents,
		Total:     storeResp.Total,
		Took:      time.Duration(storeResp.TookMs) * time.Millisecond,
		MaxScore:  storeResp.MaxScore,
	}, nil
}
