package ai

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

// Ensure HuggingFaceEmbedding implements EmbeddingProvider
var _ driven.EmbeddingProvider = (*HuggingFaceEmbedding)(nil)

// HuggingFaceEmbedding implements EmbeddingProvider using the HuggingFace
// inference API's feature-extraction pipeline
type HuggingFaceEmbedding struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewHuggingFaceEmbedding creates a new HuggingFace embedding provider
func NewHuggingFaceEmbedding(apiKey, model, baseURL string, timeout time.Duration) (*HuggingFaceEmbedding, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: HuggingFace API key is required", domain.ErrConfiguration)
	}
	if model == "" {
		model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &HuggingFaceEmbedding{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// huggingFaceRequest is the request body for the feature-extraction pipeline
type huggingFaceRequest struct {
	Inputs  string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// Generate embeds one text. The pipeline answers with a raw number array,
// or a nested one for sentence-level models; both are accepted.
func (e *HuggingFaceEmbedding) Generate(ctx context.Context, text string) (*domain.EmbeddingResult, error) {
	reqBody := huggingFaceRequest{Inputs: text}
	reqBody.Options.WaitForModel = true

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HuggingFace returned status %d: %s",
			domain.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	vector, err := parseFeatureExtraction(respBody)
	if err != nil {
		return nil, err
	}

	return &domain.EmbeddingResult{Vector: vector}, nil
}

// parseFeatureExtraction accepts a flat number array or one nesting level
func parseFeatureExtraction(body []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	return nil, fmt.Errorf("%w: response is not a numeric vector", domain.ErrMalformedResponse)
}

// Model returns the model identifier being used
func (e *HuggingFaceEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the inference API is reachable
func (e *HuggingFaceEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.Generate(ctx, "health check")
	return err
}

// Close releases resources held by the provider
func (e *HuggingFaceEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
