package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"presupuesto/internal/cache"
	"presupuesto/internal/storage/memory"
)

type countingStore struct {
	Store
	gets   int
	setErr error
}

func (c *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	if c.setErr != nil {
		return c.setErr
	}
	return c.Store.Set(ctx, key, value)
}

func TestCachedReadThrough(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: memory.New()}
	_ = backing.Store.Set(ctx, "k", "v")

	s := NewCached(backing, cache.NewLRUCache[string](4, time.Minute))
	for i := 0; i < 3; i++ {
		if v, ok, err := s.Get(ctx, "k"); !ok || err != nil || v != "v" {
			t.Fatalf("get %d: %q ok=%v err=%v", i, v, ok, err)
		}
	}
	if backing.gets != 1 {
		t.Fatalf("expected 1 backing read, got %d", backing.gets)
	}

	// Misses are not cached.
	s.Get(ctx, "missing")
	s.Get(ctx, "missing")
	if backing.gets != 3 {
		t.Fatalf("expected misses to hit backing store, got %d reads", backing.gets)
	}
}

func TestCachedWriteThroughAndDelete(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: memory.New()}
	s := NewCached(backing, cache.NewLRUCache[string](4, time.Minute))

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _, _ := s.Get(ctx, "k"); v != "v1" || backing.gets != 0 {
		t.Fatalf("expected cached v1 without backing read, got %q reads=%d", v, backing.gets)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCachedFailedWriteEvicts(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: memory.New()}
	s := NewCached(backing, cache.NewLRUCache[string](4, time.Minute))
	_ = s.Set(ctx, "k", "v1")

	backing.setErr = errors.New("disk full")
	if err := s.Set(ctx, "k", "v2"); err == nil {
		t.Fatalf("expected error from backing store")
	}
	if v, _, _ := s.Get(ctx, "k"); v != "v1" {
		t.Fatalf("expected backing value v1 after failed write, got %q", v)
	}
}
