// Package service 实现目录的业务操作：每类实体一个服务，事务、规则校验与事件发布都在这一层完成.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/genovault/pkg/configs"
	ctxPkg "github.com/yeisme/genovault/pkg/context"
	"github.com/yeisme/genovault/pkg/internal/errs"
	"github.com/yeisme/genovault/pkg/internal/linkgraph"
	"github.com/yeisme/genovault/pkg/internal/query"
	"github.com/yeisme/genovault/pkg/internal/relation"
	dbc "github.com/yeisme/genovault/pkg/internal/storage/db"
	"github.com/yeisme/genovault/pkg/internal/visibility"
	nlog "github.com/yeisme/genovault/pkg/log"
	"github.com/yeisme/genovault/pkg/metrics"
	"github.com/yeisme/genovault/pkg/queue"
	"github.com/yeisme/genovault/pkg/tracing"
)

// Catalog 目录服务共享的依赖.
type Catalog struct {
	db       *gorm.DB
	lockRows bool
	visible  *visibility.Filter
	rules    *relation.Engine
	links    *linkgraph.Maintainer
	events   *queue.Emitter
	limits   query.Limits
	retries  int
}

// Option 配置 Catalog.
type Option func(*Catalog)

// WithClock 设置可见性判断使用的时钟.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.visible = visibility.New(now) }
}

// WithEmitter 设置事件发布器.
func WithEmitter(e *queue.Emitter) Option {
	return func(c *Catalog) { c.events = e }
}

// WithLimits 设置分页上下限.
func WithLimits(l query.Limits) Option {
	return func(c *Catalog) { c.limits = l }
}

// WithRetries 设置冲突重试次数，小于 1 时按 1 处理.
func WithRetries(n int) Option {
	return func(c *Catalog) { c.retries = max(n, 1) }
}

// WithRule 在默认规则之后追加一条写入规则.
func WithRule(r relation.Rule) Option {
	return func(c *Catalog) { c.rules.Register(r) }
}

// NewCatalog 创建目录服务.
func NewCatalog(client *dbc.Client, opts ...Option) *Catalog {
	c := &Catalog{
		db:       client.GetDB(),
		lockRows: client.SupportsRowLocks(),
		visible:  visibility.New(nil),
		rules:    relation.NewDefaultEngine(),
		limits:   query.Limits{DefaultSize: configs.DefaultPageSize, MaxSize: configs.DefaultMaxPageSize},
		retries:  configs.DefaultWriteRetries,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.links = linkgraph.New(c.lockRows)
	c.rules.OnReject(func(rule string, err error) {
		nlog.Logger().Debug().Str("rule", rule).Err(err).Msg("write rejected")
	})

	return c
}

// FromConfig 按全局配置创建目录服务.
func FromConfig(client *dbc.Client, pub *queue.Emitter) *Catalog {
	cfg := configs.GetConfig().Catalog

	return NewCatalog(client,
		WithEmitter(pub),
		WithLimits(query.Limits{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}),
		WithRetries(cfg.WriteRetries),
	)
}

type catalogKey struct{}

// WithCatalog 将 Catalog 存入 context.
func WithCatalog(ctx context.Context, c *Catalog) context.Context {
	return context.WithValue(ctx, catalogKey{}, c)
}

// FromContext 取出 Catalog，context 中只有存储管理器时按配置临时构建.
func FromContext(ctx context.Context) *Catalog {
	if c, ok := ctx.Value(catalogKey{}).(*Catalog); ok {
		return c
	}

	if client := ctxPkg.DB(ctx); client != nil {
		var pub *queue.Emitter
		if mq := ctxPkg.MQ(ctx); mq != nil {
			pub = queue.NewEmitter(mq.Publisher(), configs.GetConfig().Events)
		}

		return FromConfig(client, pub)
	}

	return nil
}

// Limits 返回分页上下限.
func (c *Catalog) Limits() query.Limits { return c.limits }

// Visibility 返回可见性过滤器.
func (c *Catalog) Visibility() *visibility.Filter { return c.visible }

// DB 返回底层连接，供导入等批处理使用.
func (c *Catalog) DB() *gorm.DB { return c.db }

// inTx 在事务内执行 fn，遇到并发冲突时整体重试.
func (c *Catalog) inTx(ctx context.Context, entity, op string, fn func(tx *gorm.DB) error) (err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog."+entity+"."+op,
		trace.WithAttributes(attribute.String("entity", entity), attribute.String("op", op)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
		c.observe(entity, op, err)
	}()

	for attempt := 1; ; attempt++ {
		err = c.db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}

		err = translate(entity, err)
		if !errs.IsConflict(err) || attempt >= c.retries {
			return err
		}

		metrics.WriteRetries.WithLabelValues(entity).Inc()
		nlog.Logger().Debug().Str("entity", entity).Int("attempt", attempt).Err(err).Msg("retrying write after conflict")
	}
}

// translate 将驱动层的唯一约束冲突转为可重试冲突，重试时由规则给出具体原因.
func translate(entity string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflict(entity, "", err)
	}

	return err
}

func (c *Catalog) observe(entity, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err).String()
	}

	metrics.CatalogWrites.WithLabelValues(entity, op, outcome).Inc()
}

// emit 发布事件，失败只记录日志. 事件头带上调用者与追踪标识.
func (c *Catalog) emit(ctx context.Context, topic string, publish func(*queue.Emitter, ...queue.HeaderOption) error) {
	if c.events == nil {
		return
	}

	var h []queue.HeaderOption
	if actor := ctxPkg.Principal(ctx); actor != "" {
		h = append(h, queue.WithActor(actor))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		h = append(h, queue.WithTraceID(sc.TraceID().String()))
	}

	if err := publish(c.events, h...); err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		l := nlog.FromContext(ctx)
		l.Warn().Err(err).Str("topic", topic).Msg("publish event failed")

		return
	}

	metrics.EventsPublished.WithLabelValues(topic, "ok").Inc()
}

// lockFor 在支持行锁的方言上追加 FOR UPDATE.
func (c *Catalog) lockFor(tx *gorm.DB) *gorm.DB {
	if c.lockRows {
		return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	return tx
}

// page 计数并按分页读取 T，filters 只追加条件.
func page[T any](ctx context.Context, db *gorm.DB, p query.Page, fallback string, filters ...query.Filter) ([]T, query.PageInfo, error) {
	var (
		rows  []T
		total int64
	)

	q := db.WithContext(ctx).Model(new(T)).Scopes(query.Scopes(filters...)...)

	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, query.PageInfo{}, fmt.Errorf("count: %w", err)
	}

	if err := q.Session(&gorm.Session{}).Scopes(p.Apply(fallback)).Find(&rows).Error; err != nil {
		return nil, query.PageInfo{}, fmt.Errorf("list: %w", err)
	}

	return rows, p.Info(total), nil
}

// touch 只刷新 lastModifiedDate，空更新集合由审计插件补上时间戳.
func touch(tx *gorm.DB, row any) error {
	return tx.Model(row).Updates(map[string]any{}).Error
}
