package ingest

import (
	"context"
	"fmt"
	"sort"

	"github.com/yeisme/genovault/pkg/cache"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
)

// Entry 台账中的一条记录及其摘要.
type Entry struct {
	Digest string `json:"digest"`
	Record
}

// Ledger 导入台账：文档摘要到导入记录的映射，保存在 KV 的 ingest 命名空间.
type Ledger struct {
	c *cache.Cache
}

// NewLedger 打开台账.
func NewLedger(store kv.KVStore) *Ledger {
	return &Ledger{c: cache.NewCache(store, LedgerNamespace)}
}

// Entries 按导入时间排序返回全部记录，已过期或被并发删除的键跳过.
func (l *Ledger) Entries(ctx context.Context) ([]Entry, error) {
	keys, err := l.c.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}

	out := make([]Entry, 0, len(keys))

	for _, k := range keys {
		rec, ok, err := cache.Get[Record](ctx, l.c, k)
		if err != nil {
			return nil, fmt.Errorf("read ledger %s: %w", k, err)
		}

		if ok {
			out = append(out, Entry{Digest: k, Record: rec})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}

		return out[i].Digest < out[j].Digest
	})

	return out, nil
}

// Forget 删除一条记录，下次导入时对应文档会被重新处理.
func (l *Ledger) Forget(ctx context.Context, digest string) (bool, error) {
	ok, err := l.c.Exists(ctx, digest)
	if err != nil || !ok {
		return false, err
	}

	return true, l.c.Delete(ctx, digest)
}

// Reset 清空台账.
func (l *Ledger) Reset(ctx context.Context) error {
	return l.c.Clear(ctx)
}
