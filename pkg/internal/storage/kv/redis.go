//go:build !no_redis

package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeisme/genovault/pkg/configs"
)

// scanBatch 每次 SCAN 建议返回的键数.
const scanBatch = 256

// RedisKV 使用 Redis 原生过期. 所有键都加上 prefix，Keys 返回时去掉.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV 连接并 PING 一次.
func NewRedisKV(ctx context.Context, cfg *configs.KVConfig) (KVStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis kv %s: %w", cfg.Redis.Addr, err)
	}

	return &RedisKV{client: rdb, prefix: cfg.Redis.KeyPrefix}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return b, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

func (r *RedisKV) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}

	return n > 0, nil
}

// Keys 用 SCAN 遍历，不阻塞服务端. 模式语法与 Redis MATCH 一致.
func (r *RedisKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	var out []string

	iter := r.client.Scan(ctx, 0, r.prefix+pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), r.prefix))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", pattern, err)
	}

	return out, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func init() {
	RegisterKVFactory(configs.KVTypeRedis, NewRedisKV)
}
