package domain

import (
	"testing"
	"time"
)

func TestCacheKey_Deterministic(t *testing.T) {
	a := CacheKey("What is 5 + 3?", "model-a")
	b := CacheKey("What is 5 + 3?", "model-a")
	if a != b {
		t.Errorf("expected identical keys, got %s and %s", a, b)
	}
}

func TestCacheKey_NormalizesWhitespace(t *testing.T) {
	a := CacheKey("  What is   5 + 3?", "model-a")
	b := CacheKey("What is 5 + 3?  ", "model-a")
	if a != b {
		t.Error("expected whitespace variants to share a key")
	}
}

func TestCacheKey_ModelSensitive(t *testing.T) {
	a := CacheKey("What is 5 + 3?", "model-a")
	b := CacheKey("What is 5 + 3?", "model-b")
	if a == b {
		t.Error("expected different models to produce different keys")
	}
}

func TestCacheEntry_Expired(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := &CacheEntry{CreatedAt: created}
	ttl := time.Hour

	if entry.Expired(created.Add(59*time.Minute), ttl) {
		t.Error("entry should not be expired before the TTL")
	}
	if !entry.Expired(created.Add(time.Hour), ttl) {
		t.Error("entry should be expired at the TTL boundary")
	}
}
