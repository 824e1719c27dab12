package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// Store kinds selectable via configuration
const (
	StoreKindHTTP     = "http"
	StoreKindPostgres = "postgres"
)

// Config is the full configuration surface of the service.
// Values come from an optional YAML file, overridden by environment
// variables so deployments can stay file-less.
type Config struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Store     StoreConfig     `yaml:"store"`
}

// EmbeddingConfig selects and parameterizes the embedding provider
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Dimensions     int    `yaml:"dimensions"`
	MaxTokens      int    `yaml:"max_tokens"`
	BatchSize      int    `yaml:"batch_size"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig parameterizes the embedding cache
type CacheConfig struct {
	TTLHours   int    `yaml:"ttl_hours"`
	MaxEntries int    `yaml:"max_entries"`
	RedisURL   string `yaml:"redis_url"`
}

// StoreConfig selects the document store backend
type StoreConfig struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

// Default returns the built-in defaults
func Default() *Config {
	embedding := domain.DefaultEmbeddingSettings()
	cache := domain.DefaultCacheSettings()
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:       string(embedding.Provider),
			Model:          embedding.Model,
			BaseURL:        embedding.BaseURL,
			Dimensions:     embedding.Dimensions,
			MaxTokens:      embedding.MaxTokens,
			BatchSize:      embedding.BatchSize,
			TimeoutSeconds: int(embedding.Timeout / time.Second),
		},
		Cache: CacheConfig{
			TTLHours:   int(cache.TTL / time.Hour),
			MaxEntries: cache.MaxEntries,
		},
		Store: StoreConfig{
			Kind: StoreKindHTTP,
			URL:  "http://localhost:9200",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read config file: %v", domain.ErrConfiguration, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config file: %v", domain.ErrConfiguration, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers environment variables over the loaded values
func (c *Config) applyEnv() {
	c.Embedding.Provider = getEnv("EMBEDDING_PROVIDER", c.Embedding.Provider)
	c.Embedding.Model = getEnv("EMBEDDING_MODEL", c.Embedding.Model)
	c.Embedding.APIKey = getEnv("EMBEDDING_API_KEY", c.Embedding.APIKey)
	c.Embedding.BaseURL = getEnv("EMBEDDING_BASE_URL", c.Embedding.BaseURL)
	c.Embedding.Dimensions = getEnvInt("EMBEDDING_DIMENSIONS", c.Embedding.Dimensions)
	c.Embedding.BatchSize = getEnvInt("EMBEDDING_BATCH_SIZE", c.Embedding.BatchSize)
	c.Cache.TTLHours = getEnvInt("CACHE_TTL_HOURS", c.Cache.TTLHours)
	c.Cache.MaxEntries = getEnvInt("CACHE_MAX_ENTRIES", c.Cache.MaxEntries)
	c.Cache.RedisURL = getEnv("REDIS_URL", c.Cache.RedisURL)
	c.Store.Kind = getEnv("STORE_KIND", c.Store.Kind)
	c.Store.URL = getEnv("STORE_URL", c.Store.URL)
}

// EmbeddingSettings converts the config into domain settings
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider:   domain.EmbeddingProvider(c.Embedding.Provider),
		Model:      c.Embedding.Model,
		APIKey:     c.Embedding.APIKey,
		BaseURL:    c.Embedding.BaseURL,
		Dimensions: c.Embedding.Dimensions,
		MaxTokens:  c.Embedding.MaxTokens,
		BatchSize:  c.Embedding.BatchSize,
		Timeout:    time.Duration(c.Embedding.TimeoutSeconds) * time.Second,
	}
}

// CacheSettings converts the config into domain cache settings
func (c *Config) CacheSettings() domain.CacheSettings {
	return domain.CacheSettings{
		TTL:        time.Duration(c.Cache.TTLHours) * time.Hour,
		MaxEntries: c.Cache.MaxEntries,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
