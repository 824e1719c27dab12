package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

// fakeClock is a settable time source
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newMemoryWithClock(settings domain.CacheSettings) (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemory(settings, clock.Now), clock
}

func entry(model string, created time.Time) *domain.CacheEntry {
	return &domain.CacheEntry{
		Vector:    []float32{0.1, 0.2},
		Model:     model,
		CreatedAt: created,
	}
}

func TestMemory_PutGet(t *testing.T) {
	cache, clock := newMemoryWithClock(domain.CacheSettings{})
	ctx := context.Background()

	if err := cache.Put(ctx, "k", entry("model-a", clock.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "model-a" || len(got.Vector) != 2 {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestMemory_MissReturnsNotFound(t *testing.T) {
	cache, _ := newMemoryWithClock(domain.CacheSettings{})

	if _, err := cache.Get(context.Background(), "absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	cache, clock := newMemoryWithClock(domain.CacheSettings{TTL: time.Hour})
	ctx := context.Background()

	cache.Put(ctx, "k", entry("model-a", clock.Now()))

	clock.Advance(59 * time.Minute)
	if _, err := cache.Get(ctx, "k"); err != nil {
		t.Fatalf("entry should still be live: %v", err)
	}

	clock.Advance(time.Minute)
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after the TTL, got %v", err)
	}

	// The lazy purge removed the entry for real
	if size, _ := cache.Size(ctx); size != 0 {
		t.Errorf("expected the expired entry purged, got size %d", size)
	}
}

func TestMemory_HighWaterSweep(t *testing.T) {
	cache, clock := newMemoryWithClock(domain.CacheSettings{TTL: time.Hour, MaxEntries: 3})
	ctx := context.Background()

	// Two entries that will be expired by the time the sweep runs
	cache.Put(ctx, "old1", entry("model-a", clock.Now()))
	cache.Put(ctx, "old2", entry("model-a", clock.Now()))

	clock.Advance(2 * time.Hour)
	cache.Put(ctx, "new1", entry("model-a", clock.Now()))

	// Crossing the high-water mark triggers the sweep
	cache.Put(ctx, "new2", entry("model-a", clock.Now()))

	size, _ := cache.Size(ctx)
	if size != 2 {
		t.Errorf("expected only the live entries after the sweep, got %d", size)
	}
	if _, err := cache.Get(ctx, "new1"); err != nil {
		t.Errorf("live entry swept: %v", err)
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	cache, clock := newMemoryWithClock(domain.CacheSettings{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cache.Put(ctx, fmt.Sprintf("k%d", i), entry("model-a", clock.Now()))
	}

	if err := cache.Delete(ctx, "k0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size, _ := cache.Size(ctx); size != 2 {
		t.Errorf("expected 2 entries after delete, got %d", size)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size, _ := cache.Size(ctx); size != 0 {
		t.Errorf("expected an empty cache after clear, got %d", size)
	}
}
