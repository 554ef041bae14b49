package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/yeisme/genovault/pkg/configs"
)

// NATSKV 基于 JetStream KV 桶. 桶只保留每个键的最新值，单键过期用 ttl.go 的信封实现.
type NATSKV struct {
	kv   nats.KeyValue
	conn *nats.Conn
	now  func() time.Time
}

// NewNATSKV 连接 NATS，桶不存在时创建.
func NewNATSKV(_ context.Context, cfg *configs.KVConfig) (KVStore, error) {
	var opts []nats.Option
	if cfg.NATS.User != "" {
		opts = append(opts, nats.UserInfo(cfg.NATS.User, cfg.NATS.Password))
	}

	nc, err := nats.Connect(cfg.NATS.URL, append(opts, nats.Name("genovault-kv"))...)
	if err != nil {
		return nil, fmt.Errorf("nats kv connect %s: %w", cfg.NATS.URL, err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats kv jetstream: %w", err)
	}

	kv, err := js.KeyValue(cfg.NATS.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      cfg.NATS.Bucket,
			Description: "genovault ingest ledger",
			History:     1,
			Storage:     nats.FileStorage,
		})
	}

	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats kv bucket %s: %w", cfg.NATS.Bucket, err)
	}

	return &NATSKV{kv: kv, conn: nc, now: time.Now}, nil
}

// load 读取并解开信封，过期的键顺手删除.
func (n *NATSKV) load(key string) ([]byte, bool, error) {
	entry, err := n.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("nats kv get %s: %w", key, err)
	}

	val, expired, err := open(entry.Value(), n.now())
	if err != nil {
		return nil, false, err
	}

	if expired {
		_ = n.kv.Delete(key)
		return nil, false, nil
	}

	return val, true, nil
}

func (n *NATSKV) Get(_ context.Context, key string) ([]byte, error) {
	val, ok, err := n.load(key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrNotFound
	}

	return val, nil
}

func (n *NATSKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, err := seal(value, ttl, n.now())
	if err != nil {
		return err
	}

	if _, err := n.kv.Put(key, encoded); err != nil {
		return fmt.Errorf("nats kv put %s: %w", key, err)
	}

	return nil
}

func (n *NATSKV) Delete(_ context.Context, key string) error {
	if err := n.kv.Delete(key); err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("nats kv delete %s: %w", key, err)
	}

	return nil
}

func (n *NATSKV) Exists(_ context.Context, key string) (bool, error) {
	_, ok, err := n.load(key)

	return ok, err
}

// Keys 列出桶内的键后在本地按 glob 过滤，过期键不返回.
func (n *NATSKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := n.kv.Keys(nats.Context(ctx))
	if errors.Is(err, nats.ErrNoKeysFound) {
		return []string{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("nats kv keys: %w", err)
	}

	out := make([]string, 0, len(keys))

	for _, k := range keys {
		if !matchKey(pattern, k) {
			continue
		}

		if _, ok, err := n.load(k); err == nil && ok {
			out = append(out, k)
		}
	}

	return out, nil
}

func (n *NATSKV) Close() error {
	n.conn.Close()

	return nil
}

func init() {
	RegisterKVFactory(configs.KVTypeNATS, NewNATSKV)
}
