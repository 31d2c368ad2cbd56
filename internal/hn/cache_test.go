package hn

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/burrowhq/burrow/internal/model"
)

// countingSource serves items from a map and counts upstream lookups.
type countingSource struct {
	items map[int64]model.Item
	calls map[int64]int
}

func newCountingSource(items ...model.Item) *countingSource {
	s := &countingSource{items: make(map[int64]model.Item), calls: make(map[int64]int)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *countingSource) Item(ctx context.Context, id int64) (model.Item, error) {
	s.calls[id]++
	item, ok := s.items[id]
	if !ok {
		return model.Item{}, ErrNotFound
	}
	return item, nil
}

func setupTestCache(t *testing.T, src Source, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	cache := NewCacheWithClient(src, client, ttl)
	t.Cleanup(func() { cache.Close() })
	return cache, s
}

func TestCacheReadThrough(t *testing.T) {
	src := newCountingSource(model.Item{ID: 1, Type: "comment", By: "alice", Text: "hi"})
	cache, _ := setupTestCache(t, src, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		item, err := cache.Item(ctx, 1)
		if err != nil {
			t.Fatalf("item (call %d): %v", i, err)
		}
		if item.By != "alice" {
			t.Errorf("expected author 'alice', got %q", item.By)
		}
	}

	if src.calls[1] != 1 {
		t.Errorf("expected 1 upstream call, got %d", src.calls[1])
	}
}

func TestCacheExpiry(t *testing.T) {
	src := newCountingSource(model.Item{ID: 2, Type: "comment"})
	cache, s := setupTestCache(t, src, time.Minute)

	ctx := context.Background()
	if _, err := cache.Item(ctx, 2); err != nil {
		t.Fatalf("item: %v", err)
	}

	s.FastForward(2 * time.Minute)

	if _, err := cache.Item(ctx, 2); err != nil {
		t.Fatalf("item after expiry: %v", err)
	}
	if src.calls[2] != 2 {
		t.Errorf("expected 2 upstream calls after TTL expiry, got %d", src.calls[2])
	}
}

func TestCacheNotFoundNotCached(t *testing.T) {
	src := newCountingSource()
	cache, _ := setupTestCache(t, src, time.Minute)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := cache.Item(ctx, 3); err != ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}

	if src.calls[3] != 2 {
		t.Errorf("expected NotFound to reach upstream every time, got %d calls", src.calls[3])
	}
}

func TestCacheCorruptEntryFallsBack(t *testing.T) {
	src := newCountingSource(model.Item{ID: 4, Type: "comment", By: "bob"})
	cache, s := setupTestCache(t, src, time.Minute)

	if err := s.Set("item:4", "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	item, err := cache.Item(context.Background(), 4)
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if item.By != "bob" {
		t.Errorf("expected upstream record, got %+v", item)
	}
	if src.calls[4] != 1 {
		t.Errorf("expected corrupt entry to fall back upstream, got %d calls", src.calls[4])
	}
}
