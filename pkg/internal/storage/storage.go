// Package storage 聚合目录使用的存储资源：数据库、消息队列、KV 以及可选的 S3.
//
// Example:
//
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	mqClient := mgr.GetMQClient() // events.enabled=false 时为 nil
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yeisme/genovault/pkg/configs"
	dbc "github.com/yeisme/genovault/pkg/internal/storage/db"
	kvc "github.com/yeisme/genovault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/genovault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/genovault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/genovault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	MQ *mqc.Client
	KV *kvc.Client
	S3 *s3c.Client
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	mgrOnce.Do(func() {
		mgr, mgrErr = New(ctx, configs.GetConfig())
		if mgrErr == nil {
			nlog.Logger().Info().Msg("storage manager initialized")
		}
	})

	return mgr, mgrErr
}

// New 按配置创建存储资源：
// DB 总是创建；MQ 仅在 events.enabled 时创建；S3 仅在 ingest.s3_prefix 非空时创建.
func New(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	dbi, err := dbc.New(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}

	m.DB = dbi

	if cfg.Events.Enabled {
		mqi, err := mqc.New(ctx, &cfg.MQ)
		if err != nil {
			_ = m.Close()
			return nil, err
		}

		m.MQ = mqi
	}

	kvi, err := kvc.NewKVClient(ctx, &cfg.KV)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init kv (%s): %w", cfg.KV.Type, err)
	}

	m.KV = kvi

	if cfg.Ingest.S3Prefix != "" {
		s3i, err := s3c.New(ctx, &cfg.S3)
		if err != nil {
			_ = m.Close()
			return nil, err
		}

		m.S3 = s3i
	}

	return m, nil
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetMQClient 获取 MQ 客户端，未启用事件时为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// Close 释放全部资源.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	var err error

	if m.MQ != nil {
		err = errors.Join(err, m.MQ.Close())
	}

	if m.KV != nil {
		err = errors.Join(err, m.KV.Close())
	}

	if m.S3 != nil {
		err = errors.Join(err, m.S3.Close())
	}

	if m.DB != nil {
		err = errors.Join(err, m.DB.Close())
	}

	return err
}
