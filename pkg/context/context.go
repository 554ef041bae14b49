// Package context 在请求 context 中携带存储管理器与调用者身份.
package context

import (
	"context"

	"github.com/yeisme/genovault/pkg/internal/storage"
	dbc "github.com/yeisme/genovault/pkg/internal/storage/db"
	kvc "github.com/yeisme/genovault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/genovault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/genovault/pkg/internal/storage/s3"
)

type key int

const (
	managerKey key = iota
	principalKey
)

// WithStorageManager 将存储管理器放进 context.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, managerKey, mgr)
}

// Manager 取出存储管理器，不存在时返回 nil.
func Manager(ctx context.Context) *storage.Manager {
	mgr, _ := ctx.Value(managerKey).(*storage.Manager)

	return mgr
}

// DB 目录数据库客户端.
func DB(ctx context.Context) *dbc.Client {
	if mgr := Manager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// MQ 事件总线客户端，events.enabled=false 时为 nil.
func MQ(ctx context.Context) *mqc.Client {
	if mgr := Manager(ctx); mgr != nil {
		return mgr.GetMQClient()
	}

	return nil
}

// S3 导入源使用的对象存储.
func S3(ctx context.Context) *s3c.Client {
	if mgr := Manager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// KV 导入台账使用的键值存储.
func KV(ctx context.Context) *kvc.Client {
	if mgr := Manager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// WithPrincipal 记录发起写操作的调用者.
func WithPrincipal(ctx context.Context, email string) context.Context {
	if email == "" {
		return ctx
	}

	return context.WithValue(ctx, principalKey, email)
}

// Principal 返回调用者邮箱，匿名请求为空串.
func Principal(ctx context.Context) string {
	p, _ := ctx.Value(principalKey).(string)

	return p
}
