package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

func newRedisCache(t *testing.T, settings domain.CacheSettings) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client, settings), mr
}

func TestRedis_PutGet(t *testing.T) {
	cache, _ := newRedisCache(t, domain.CacheSettings{TTL: time.Hour})
	ctx := context.Background()

	want := &domain.CacheEntry{
		Vector:    []float32{0.1, 0.2, 0.3},
		Model:     "model-a",
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := cache.Put(ctx, "k", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != want.Model || len(got.Vector) != 3 {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestRedis_MissReturnsNotFound(t *testing.T) {
	cache, _ := newRedisCache(t, domain.CacheSettings{})

	if _, err := cache.Get(context.Background(), "absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedis_TTLExpiry(t *testing.T) {
	cache, mr := newRedisCache(t, domain.CacheSettings{TTL: time.Hour})
	ctx := context.Background()

	cache.Put(ctx, "k", &domain.CacheEntry{Vector: []float32{1}, Model: "model-a"})

	mr.FastForward(time.Hour + time.Second)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after the TTL, got %v", err)
	}
}

func TestRedis_DeleteAndSize(t *testing.T) {
	cache, _ := newRedisCache(t, domain.CacheSettings{TTL: time.Hour})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cache.Put(ctx, fmt.Sprintf("k%d", i), &domain.CacheEntry{Vector: []float32{1}, Model: "model-a"})
	}

	if size, err := cache.Size(ctx); err != nil || size != 3 {
		t.Fatalf("expected 3 entries, got %d (%v)", size, err)
	}

	if err := cache.Delete(ctx, "k0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size, _ := cache.Size(ctx); size != 2 {
		t.Errorf("expected 2 entries after delete, got %d", size)
	}
}

func TestRedis_ClearLeavesOtherKeyspacesAlone(t *testing.T) {
	cache, mr := newRedisCache(t, domain.CacheSettings{TTL: time.Hour})
	ctx := context.Background()

	cache.Put(ctx, "k1", &domain.CacheEntry{Vector: []float32{1}, Model: "model-a"})
	cache.Put(ctx, "k2", &domain.CacheEntry{Vector: []float32{1}, Model: "model-a"})
	mr.Set("session:user-1", "unrelated")

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if size, _ := cache.Size(ctx); size != 0 {
		t.Errorf("expected an empty embedding keyspace, got %d", size)
	}
	if !mr.Exists("session:user-1") {
		t.Error("clear must not touch other keyspaces")
	}
}
