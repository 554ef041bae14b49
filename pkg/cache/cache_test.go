package cache_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/yeisme/genovault/pkg/cache"
	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
)

type record struct {
	Batch string `json:"batch"`
	Files int    `json:"files"`
}

func newStore(t *testing.T) kv.KVStore {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), &configs.KVConfig{Type: configs.KVTypeMemory})
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestGetMissing(t *testing.T) {
	c := cache.NewCache(newStore(t), "ingest")

	_, ok, err := cache.Get[record](context.Background(), c, "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok {
		t.Fatal("expected miss")
	}
}

func TestSetGetUsesNamespace(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	c := cache.NewCache(store, "ingest")

	if err := cache.Set(ctx, c, "abc", record{Batch: "b1", Files: 3}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := cache.Get[record](ctx, c, "abc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}

	if got.Batch != "b1" || got.Files != 3 {
		t.Fatalf("unexpected record %+v", got)
	}

	if ok, _ := store.Exists(ctx, "ingest.abc"); !ok {
		t.Fatal("expected prefixed key in store")
	}
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewCache(newStore(t), "ns")
	calls := 0

	getter := func() (record, error) {
		calls++
		return record{Batch: "x", Files: 1}, nil
	}

	for range 2 {
		if _, err := cache.GetOrSet(ctx, c, "k", getter, 0); err != nil {
			t.Fatalf("get or set: %v", err)
		}
	}

	if calls != 1 {
		t.Fatalf("getter called %d times, want 1", calls)
	}

	boom := errors.New("boom")

	_, err := cache.GetOrSet(ctx, c, "other", func() (record, error) { return record{}, boom }, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected getter error, got %v", err)
	}
}

func TestKeysAndClearStayInNamespace(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := cache.NewCache(store, "a")
	b := cache.NewCache(store, "b")

	for _, k := range []string{"1", "2"} {
		if err := cache.Set(ctx, a, k, k, 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := cache.Set(ctx, b, "1", "b", 0); err != nil {
		t.Fatal(err)
	}

	keys, err := a.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}

	slices.Sort(keys)

	if !slices.Equal(keys, []string{"1", "2"}) {
		t.Fatalf("keys = %v", keys)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if ok, _ := a.Exists(ctx, "1"); ok {
		t.Fatal("a.1 should be cleared")
	}

	if ok, _ := b.Exists(ctx, "1"); !ok {
		t.Fatal("b.1 must survive clearing a")
	}
}
