package domain

import (
	"fmt"
	"time"
)

// EmbeddingProvider identifies the embedding backend
type EmbeddingProvider string

const (
	ProviderOllama      EmbeddingProvider = "ollama"
	ProviderOpenAI      EmbeddingProvider = "openai"
	ProviderHuggingFace EmbeddingProvider = "huggingface"
)

// RequiresAPIKey returns true if this provider requires an API key
func (p EmbeddingProvider) RequiresAPIKey() bool {
	switch p {
	case ProviderOllama:
		return false // Self-hosted, no API key needed
	default:
		return true
	}
}

// IsValid returns true if this is a known provider
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderHuggingFace:
		return true
	default:
		return false
	}
}

// EmbeddingSettings configures the embedding service.
// Exactly one provider is active at a time; switching the model or provider
// invalidates the entire embedding cache.
type EmbeddingSettings struct {
	Provider   EmbeddingProvider `json:"provider"`
	Model      string            `json:"model"`
	APIKey     string            `json:"-"` // Never serialize to JSON
	BaseURL    string            `json:"base_url,omitempty"`
	Dimensions int               `json:"dimensions"`
	MaxTokens  int               `json:"max_tokens"`
	BatchSize  int               `json:"batch_size"`
	Timeout    time.Duration     `json:"timeout"`
}

// DefaultEmbeddingSettings returns defaults for a local Ollama backend
func DefaultEmbeddingSettings() EmbeddingSettings {
	return EmbeddingSettings{
		Provider:   ProviderOllama,
		Model:      "nomic-embed-text",
		BaseURL:    "http://localhost:11434",
		Dimensions: 768,
		MaxTokens:  8192,
		BatchSize:  10,
		Timeout:    30 * time.Second,
	}
}

// IsConfigured returns true if embedding settings are properly configured
func (s *EmbeddingSettings) IsConfigured() bool {
	if s.Provider == "" || s.Model == "" {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// Validate checks the settings, wrapping ErrConfiguration or
// ErrInvalidProvider on failure
func (s *EmbeddingSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidProvider, s.Provider)
	}
	if s.Model == "" {
		return fmt.Errorf("%w: model is required", ErrConfiguration)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: %s requires an API key", ErrConfiguration, s.Provider)
	}
	return nil
}

// CacheSettings configures the embedding cache
type CacheSettings struct {
	// TTL bounds the age of a cached vector
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the high-water mark that triggers an expiry sweep
	MaxEntries int `json:"max_entries"`
}

// DefaultCacheSettings returns sensible defaults
func DefaultCacheSettings() CacheSettings {
	return CacheSettings{
		TTL:        24 * time.Hour,
		MaxEntries: 10000,
	}
}
