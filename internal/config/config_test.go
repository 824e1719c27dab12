package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Embedding.Provider != string(domain.ProviderOllama) {
		t.Errorf("unexpected default provider %s", cfg.Embedding.Provider)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Errorf("expected 24h default TTL, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Cache.MaxEntries != 10000 {
		t.Errorf("expected 10000 default max entries, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Store.Kind != StoreKindHTTP {
		t.Errorf("unexpected default store kind %s", cfg.Store.Kind)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
embedding:
  provider: openai
  model: text-embedding-3-small
  api_key: sk-test
  dimensions: 1536
cache:
  ttl_hours: 48
store:
  kind: postgres
  url: postgres://localhost/quizvec
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Embedding.Provider != "openai" || cfg.Embedding.Dimensions != 1536 {
		t.Errorf("unexpected embedding config %+v", cfg.Embedding)
	}
	if cfg.Cache.TTLHours != 48 {
		t.Errorf("expected 48h TTL, got %d", cfg.Cache.TTLHours)
	}
	// Untouched values keep their defaults
	if cfg.Cache.MaxEntries != 10000 {
		t.Errorf("expected the default max entries, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Store.Kind != StoreKindPostgres {
		t.Errorf("expected the postgres store, got %s", cfg.Store.Kind)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "huggingface")
	t.Setenv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2")
	t.Setenv("CACHE_TTL_HOURS", "12")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Embedding.Provider != "huggingface" {
		t.Errorf("expected the env provider, got %s", cfg.Embedding.Provider)
	}
	if cfg.Cache.TTLHours != 12 {
		t.Errorf("expected 12h TTL, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("expected the env redis url, got %s", cfg.Cache.RedisURL)
	}
}

func TestConfig_SettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.Embedding.TimeoutSeconds = 45
	cfg.Cache.TTLHours = 24

	settings := cfg.EmbeddingSettings()
	if settings.Provider != domain.ProviderOllama {
		t.Errorf("unexpected provider %s", settings.Provider)
	}
	if settings.Timeout != 45*time.Second {
		t.Errorf("expected a 45s timeout, got %v", settings.Timeout)
	}

	cacheSettings := cfg.CacheSettings()
	if cacheSettings.TTL != 24*time.Hour {
		t.Errorf("expected a 24h TTL, got %v", cacheSettings.TTL)
	}
}
