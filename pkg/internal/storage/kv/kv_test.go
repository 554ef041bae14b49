package kv_test

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
)

func newMemory(t *testing.T) kv.KVStore {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), &configs.KVConfig{Type: configs.KVTypeMemory})
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestMemoryKVBasic(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "ingest/a", []byte("1"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, "ingest/a")
	if err != nil || string(got) != "1" {
		t.Fatalf("get = %q, %v", got, err)
	}

	ok, err := store.Exists(ctx, "ingest/a")
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}

	if err := store.Delete(ctx, "ingest/a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if ok, _ := store.Exists(ctx, "ingest/a"); ok {
		t.Fatal("key should be gone after delete")
	}
}

func TestMemoryKVTTL(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	if err := store.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := store.Set(ctx, "long", []byte("y"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, "short"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expired key should be not found, got %v", err)
	}

	if got, err := store.Get(ctx, "long"); err != nil || string(got) != "y" {
		t.Fatalf("get long = %q, %v", got, err)
	}
}

func TestMemoryKVKeysPattern(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	for _, k := range []string{"ingest/a", "ingest/b", "other"} {
		if err := store.Set(ctx, k, []byte("v"), 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := store.Keys(ctx, "ingest/*")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("expected 2 ingest keys, got %v", keys)
	}

	all, _ := store.Keys(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %v", all)
	}
}

func TestUnsupportedKVType(t *testing.T) {
	if _, err := kv.NewKVStore(context.Background(), &configs.KVConfig{Type: "etcd"}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func BenchmarkMemoryKV(b *testing.B) {
	store, err := kv.NewKVStore(context.Background(), &configs.KVConfig{Type: configs.KVTypeMemory})
	if err != nil {
		b.Fatalf("create memory kv: %v", err)
	}

	benchKV(b, "memory", store)
	benchKVParallel(b, "memory", store)
	_ = store.Close()
}

// Optional: enable with ENABLE_REDIS_BENCH=1 and REDIS_ADDR set (default 127.0.0.1:6379).
func BenchmarkRedisKV(b *testing.B) {
	if os.Getenv("ENABLE_REDIS_BENCH") == "" {
		b.Skip("set ENABLE_REDIS_BENCH=1 to enable")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	cfg := &configs.KVConfig{Type: configs.KVTypeRedis, Redis: configs.RedisKVConfig{Addr: addr}}

	store, err := kv.NewKVStore(context.Background(), cfg)
	if err != nil {
		b.Skipf("redis not available: %v", err)
		return
	}

	benchKV(b, "redis", store)
	benchKVParallel(b, "redis", store)
	_ = store.Close()
}

// Optional: enable with ENABLE_NATS_BENCH=1 and NATS_URL set (default nats://127.0.0.1:4222)
func BenchmarkNATSKV(b *testing.B) {
	if os.Getenv("ENABLE_NATS_BENCH") == "" {
		b.Skip("set ENABLE_NATS_BENCH=1 to enable")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		url = "nats://127.0.0.1:4222"
	}

	bucket := os.Getenv("NATS_BUCKET")
	if bucket == "" {
		bucket = "bench-kv"
	}

	cfg := &configs.KVConfig{Type: configs.KVTypeNATS, NATS: configs.NATSKVConfig{URL: url, Bucket: bucket}}

	store, err := kv.NewKVStore(context.Background(), cfg)
	if err != nil {
		b.Skipf("nats not available: %v", err)
		return
	}

	benchKV(b, "nats", store)
	benchKVParallel(b, "nats", store)
	_ = store.Close()
}

// randBytes returns n random bytes, seeded reproducibly for bench.
func randBytes(n int) []byte {
	b := make([]byte, n)
	// Try crypto/rand; if it fails (unlikely in tests), fallback to deterministic PRNG.
	if _, err := crand.Read(b); err != nil {
		mr := mrand.New(mrand.NewSource(42))
		for i := range b {
			b[i] = byte(mr.Intn(256))
		}
	}

	return b
}

// benchKV 执行基本的 Set/Get/Delete 基准测试.
func benchKV(b *testing.B, name string, store kv.KVStore) {
	ctx := context.Background()
	sizes := []int{32, 1024, 64 * 1024}
	ttls := []time.Duration{0, 5 * time.Second}

	for _, size := range sizes {
		payload := randBytes(size)
		for _, ttl := range ttls {
			b.Run(fmt.Sprintf("%s/size=%d/ttl=%s", name, size, ttl), func(b *testing.B) {
				// ensure clean
				b.ReportAllocs()

				for i := 0; b.Loop(); i++ {
					// Use hyphens to ensure keys are valid for NATS KV
					key := fmt.Sprintf("bench-%s-%d", name, i)
					if err := store.Set(ctx, key, payload, ttl); err != nil {
						b.Fatalf("set failed: %v", err)
					}

					if _, err := store.Get(ctx, key); err != nil {
						b.Fatalf("get failed: %v", err)
					}

					if err := store.Delete(ctx, key); err != nil {
						b.Fatalf("delete failed: %v", err)
					}
				}
			})
		}
	}
}

// benchKVParallel 执行并行的 Set/Get/Delete 基准测试.
func benchKVParallel(b *testing.B, name string, store kv.KVStore) {
	ctx := context.Background()
	size := 1024
	payload := randBytes(size)

	var ctr uint64

	b.Run(fmt.Sprintf("%s/parallel", name), func(b *testing.B) {
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				i := atomic.AddUint64(&ctr, 1)

				// Use hyphens to ensure keys are valid for NATS KV
				key := fmt.Sprintf("bench-%s-p-%d", name, i)
				if err := store.Set(ctx, key, payload, 0); err != nil {
					b.Fatalf("set failed: %v", err)
				}

				if _, err := store.Get(ctx, key); err != nil {
					b.Fatalf("get failed: %v", err)
				}

				if err := store.Delete(ctx, key); err != nil {
					b.Fatalf("delete failed: %v", err)
				}
			}
		})
	})
}
