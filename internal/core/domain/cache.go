package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CacheEntry is one cached embedding. An entry is only served while it is
// younger than the cache TTL and was produced by the currently active model;
// any mismatch is treated as a miss and purged lazily.
type CacheEntry struct {
	Vector    []float32 `json:"vector"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the entry has outlived ttl at the given instant
func (e *CacheEntry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) >= ttl
}

// CacheKey computes the deterministic content hash for a (text, model) pair.
// The text is normalized first so trivial whitespace differences share an
// entry. The key doubles as a stable document fingerprint.
func CacheKey(text, model string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(NormalizeText(text)))
	return hex.EncodeToString(h.Sum(nil))
}
