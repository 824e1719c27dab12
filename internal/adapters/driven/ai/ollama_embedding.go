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

// Ensure OllamaEmbedding implements EmbeddingProvider
var _ driven.EmbeddingProvider = (*OllamaEmbedding)(nil)

// OllamaEmbedding implements EmbeddingProvider against a local Ollama server
type OllamaEmbedding struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEmbedding creates a new Ollama embedding provider.
// Ollama is self-hosted and needs no API key.
func NewOllamaEmbedding(baseURL, model string, timeout time.Duration) (*OllamaEmbedding, error) {
	if model == "" {
		return nil, fmt.Errorf("%w: ollama model is required", domain.ErrConfiguration)
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OllamaEmbedding{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ollamaRequest is the request body for the Ollama embeddings API
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaResponse is the response from the Ollama embeddings API
type ollamaResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Generate embeds one text
func (e *OllamaEmbedding) Generate(ctx context.Context, text string) (*domain.EmbeddingResult, error) {
	body, err := json.Marshal(ollamaRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: ollama returned status %d: %s",
			domain.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var embResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("%w: response carries no embedding", domain.ErrMalformedResponse)
	}

	return &domain.EmbeddingResult{Vector: embResp.Embedding}, nil
}

// Model returns the model identifier being used
func (e *OllamaEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the Ollama server is reachable
func (e *OllamaEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.Generate(ctx, "health check")
	return err
}

// Close releases resources held by the provider
func (e *OllamaEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
