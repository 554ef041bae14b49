// Package catalogtest 为测试构建基于内存 SQLite 的目录服务.
package catalogtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm/logger"

	"github.com/yeisme/genovault/pkg/internal/model"
	"github.com/yeisme/genovault/pkg/internal/service"
	dbc "github.com/yeisme/genovault/pkg/internal/storage/db"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/queue"
)

// Clock 可手动推进的时钟.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock 从 t 开始计时.
func NewClock(t time.Time) *Clock { return &Clock{now: t} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance 推进时钟.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Env 一个测试用目录.
type Env struct {
	Catalog *service.Catalog
	Client  *dbc.Client
	Clock   *Clock
}

// Option 调整目录选项.
type Option func(*[]service.Option)

// WithEmitter 使用给定事件发布器.
func WithEmitter(e *queue.Emitter) Option {
	return func(opts *[]service.Option) { *opts = append(*opts, service.WithEmitter(e)) }
}

// WithService 透传任意目录选项.
func WithService(opts ...service.Option) Option {
	return func(all *[]service.Option) { *all = append(*all, opts...) }
}

// Start 默认的测试起始时间.
var Start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// New 打开独立的内存数据库、迁移表结构并返回目录.
func New(t testing.TB, opts ...Option) *Env {
	t.Helper()

	clock := NewClock(Start)
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	client, err := dbc.Open(sqlite.Open(dsn), dbc.WithClock(clock.Now), dbc.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })

	if err := client.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svcOpts := []service.Option{service.WithClock(clock.Now)}
	for _, opt := range opts {
		opt(&svcOpts)
	}

	return &Env{Catalog: service.NewCatalog(client, svcOpts...), Client: client, Clock: clock}
}

// Ptr 取地址.
func Ptr[T any](v T) *T { return &v }

// AccVer 构造请求中的外部标识.
func AccVer(accession string, version int) *types.AccessionVersionID {
	return &types.AccessionVersionID{Accession: &accession, Version: &version}
}

// Taxonomy 创建分类并返回主键.
func (e *Env) Taxonomy(t testing.TB, taxonomyID int64, name string, ancestors ...uint) uint {
	t.Helper()

	out, err := e.Catalog.Taxonomies().Create(context.Background(), &types.TaxonomyCreateRequest{
		TaxonomyID: &taxonomyID,
		Name:       name,
		Ancestors:  ancestors,
	})
	if err != nil {
		t.Fatalf("create taxonomy %s: %v", name, err)
	}

	return out.ID
}

// Study 创建研究，未给发布日期时使用当天.
func (e *Env) Study(t testing.TB, req types.StudyCreateRequest) *types.StudyResponse {
	t.Helper()

	if req.ReleaseDate == nil {
		req.ReleaseDate = Ptr(model.NewDate(e.Clock.Now()))
	}

	out, err := e.Catalog.Studies().Create(context.Background(), &req)
	if err != nil {
		t.Fatalf("create study %s: %v", req.Name, err)
	}

	return out
}

// Reference 创建参考序列并返回主键.
func (e *Env) Reference(t testing.TB, name string, typ model.ReferenceSequenceType) uint {
	t.Helper()

	out, err := e.Catalog.ReferenceSequences().Create(context.Background(), &types.ReferenceSequenceCreateRequest{
		Name: name,
		Type: typ,
	})
	if err != nil {
		t.Fatalf("create reference sequence %s: %v", name, err)
	}

	return out.ID
}

// Analysis 创建分析，缺省字段使用合法的默认值.
func (e *Env) Analysis(t testing.TB, req types.AnalysisCreateRequest) *types.AnalysisResponse {
	t.Helper()

	if req.Technology == "" {
		req.Technology = model.TechnologyGWAS
	}

	if req.Type == "" {
		req.Type = model.AnalysisCaseControl
	}

	if req.Platform == "" {
		req.Platform = "Illumina"
	}

	out, err := e.Catalog.Analyses().Create(context.Background(), &req)
	if err != nil {
		t.Fatalf("create analysis %s: %v", req.Name, err)
	}

	return out
}
