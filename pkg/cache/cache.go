// Package cache 在 KV 存储之上提供带命名空间的类型化记录.
//
// 值以 JSON（bytedance/sonic）编码后写入底层 KVStore，键统一加上 "<namespace>." 前缀，
// 便于多个用途共享同一个 Redis / NATS KV 桶. 导入任务用它记录已处理文档的摘要.
//
// 基本用法:
//
//	c := cache.NewCache(store, "ingest")
//	err := cache.Set(ctx, c, digest, record, 0)
//
//	rec, ok, err := cache.Get[Record](ctx, c, digest)
//	if ok {
//	    // 已处理过
//	}
//
// 键只允许 NATS KV 支持的字符（字母、数字与 -/_=.）.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/genovault/pkg/internal/storage/kv"
)

const sep = "."

// Cache 一个命名空间下的记录集合.
type Cache struct {
	store     kv.KVStore
	namespace string
}

// NewCache 创建缓存，namespace 为空时不加前缀.
func NewCache(store kv.KVStore, namespace string) *Cache {
	return &Cache{store: store, namespace: strings.Trim(namespace, sep)}
}

func (c *Cache) key(k string) string {
	if c.namespace == "" {
		return k
	}

	return c.namespace + sep + k
}

// Namespace 返回命名空间.
func (c *Cache) Namespace() string { return c.namespace }

// Get 读取记录，键不存在时 ok 为 false 且 err 为 nil.
func Get[T any](ctx context.Context, c *Cache, key string) (value T, ok bool, err error) {
	data, err := c.store.Get(ctx, c.key(key))
	if errors.Is(err, kv.ErrNotFound) {
		return value, false, nil
	}

	if err != nil {
		return value, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := sonic.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode cache value %s: %w", key, err)
	}

	return value, true, nil
}

// Set 写入记录，ttl<=0 表示不过期.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}

	return c.store.Set(ctx, c.key(key), data, ttl)
}

// GetOrSet 命中时直接返回；未命中时调用 getter 并写入. 写入失败不影响返回值.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	if value, ok, err := Get[T](ctx, c, key); err == nil && ok {
		return value, nil
	}

	value, err := getter()
	if err != nil {
		return value, err
	}

	_ = Set(ctx, c, key, value, ttl)

	return value, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.key(key))
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.store.Exists(ctx, c.key(key))
}

// Keys 列出命名空间内的键（不含前缀）.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	pattern := "*"
	if c.namespace != "" {
		pattern = c.namespace + sep + "*"
	}

	keys, err := c.store.Keys(ctx, pattern)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if c.namespace == "" {
			out = append(out, k)
			continue
		}

		if rest, ok := strings.CutPrefix(k, c.namespace+sep); ok {
			out = append(out, rest)
		}
	}

	return out, nil
}

// Clear 删除命名空间内的全部键.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.Keys(ctx)
	if err != nil {
		return err
	}

	for _, k := range keys {
		if err := c.Delete(ctx, k); err != nil {
			return err
		}
	}

	return nil
}
