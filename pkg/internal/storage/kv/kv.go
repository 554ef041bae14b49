// Package kv 提供用于键值存储的接口和实现.
//
// 目录本身不依赖 KV；导入任务用它记录已处理文档的摘要（xxhash），避免重复导入.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/yeisme/genovault/pkg/configs"
)

// ErrNotFound 键不存在或已过期.
var ErrNotFound = errors.New("kv: key not found")

type Client struct {
	KVStore
}

// KVStore 定义键值存储接口.
type KVStore interface {
	// Get 获取键的值，不存在时返回 ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 设置键的值，ttl<=0 表示不过期.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete 删除键.
	Delete(ctx context.Context, key string) error
	// Exists 检查键是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys 返回匹配 glob 模式的键，空模式返回全部.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Close 关闭存储连接.
	Close() error
}

// KVFactory 定义创建 KVStore 的工厂函数类型.
type KVFactory func(ctx context.Context, cfg *configs.KVConfig) (KVStore, error)

// kvFactories 存储 KV 类型到工厂的映射.
var kvFactories = make(map[configs.KVType]KVFactory)

// RegisterKVFactory 注册 KV 工厂函数.
func RegisterKVFactory(kvType configs.KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes 返回已注册的 KV 类型列表.
func GetRegisteredKVTypes() []configs.KVType {
	types := make([]configs.KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// NewKVStore 根据类型创建 KVStore 实例.
func NewKVStore(ctx context.Context, cfg *configs.KVConfig) (KVStore, error) {
	factory, exists := kvFactories[cfg.Type]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", cfg.Type)
	}

	return factory(ctx, cfg)
}

// NewKVClient 创建并返回一个新的 KVClient 实例.
func NewKVClient(ctx context.Context, cfg *configs.KVConfig) (*Client, error) {
	store, err := NewKVStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store}, nil
}

// matchKey 按 glob 规则匹配，空模式匹配全部.
func matchKey(pattern, key string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}

	ok, err := path.Match(pattern, key)

	return err == nil && ok
}
