// Package ingest 把 ENA 分析 XML 导入目录：每个 FILE 登记为文件实体，
// 并挂到同一 accession 最新的分析上. 已处理过的文档按内容摘要（xxhash）记录在 KV 中，再次出现时跳过.
package ingest

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/genovault/pkg/cache"
	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
	s3c "github.com/yeisme/genovault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/genovault/pkg/log"
	"github.com/yeisme/genovault/pkg/metrics"
	"github.com/yeisme/genovault/pkg/queue"
)

// LedgerNamespace KV 中导入记录的命名空间.
const LedgerNamespace = "ingest"

const (
	outcomeImported = "imported"
	outcomeSkipped  = "skipped"
	outcomeFailed   = "failed"
)

// Record 一个已导入文档的记录.
type Record struct {
	BatchID  string    `json:"batch_id"`
	Key      string    `json:"key"`
	Files    int       `json:"files"`
	Attached int       `json:"attached"`
	At       time.Time `json:"at"`
}

// Report 一次导入的统计.
type Report struct {
	BatchID   string
	Source    string
	Documents int
	Skipped   int
	Failed    int
	Files     int
	Attached  int
}

// Ingester 执行导入.
type Ingester struct {
	files       *service.FileService
	ledger      *Ledger
	concurrency int
	now         func() time.Time

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// Option 配置 Ingester.
type Option func(*Ingester)

// WithConcurrency 设置并发处理的文档数.
func WithConcurrency(n int) Option {
	return func(in *Ingester) { in.concurrency = max(n, 1) }
}

// WithClock 设置时钟.
func WithClock(now func() time.Time) Option {
	return func(in *Ingester) { in.now = now }
}

// New 创建 Ingester，store 为 nil 时不做去重.
func New(cat *service.Catalog, store kv.KVStore, opts ...Option) *Ingester {
	in := &Ingester{
		files:       cat.Files(),
		concurrency: configs.DefaultIngestConcurrency,
		now:         time.Now,
		entropy:     ulid.Monotonic(crand.Reader, 0),
	}

	if store != nil {
		in.ledger = NewLedger(store)
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// FromConfig 按 ingest 配置选择来源：s3_prefix 非空且 S3 可用时用对象存储，否则用本地目录.
func FromConfig(cfg configs.IngestConfig, client *s3c.Client) Source {
	if cfg.S3Prefix != "" && client != nil {
		return NewS3Source(client, cfg.S3Prefix)
	}

	return DirSource{Dir: cfg.Dir}
}

func (in *Ingester) batchID() string {
	in.entropyMu.Lock()
	defer in.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(in.now()), in.entropy).String()
}

// Digest 文档内容摘要，作为去重键.
func Digest(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Run 处理来源中的全部文档. 单个文档失败只计数并记录日志，
// 只有列举来源失败或 ctx 取消时返回错误.
func (in *Ingester) Run(ctx context.Context, src Source) (Report, error) {
	rep := Report{BatchID: in.batchID(), Source: src.Name()}
	l := nlog.Logger().With().Str("batch", rep.BatchID).Str("source", rep.Source).Logger()

	keys, err := src.List(ctx)
	if err != nil {
		return rep, err
	}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.concurrency)

	for _, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, skipped, err := in.one(gctx, src, key, rep.BatchID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				rep.Failed++

				metrics.IngestDocuments.WithLabelValues(outcomeFailed).Inc()
				l.Warn().Err(err).Str("key", key).Msg("ingest document failed")
			case skipped:
				rep.Skipped++

				metrics.IngestDocuments.WithLabelValues(outcomeSkipped).Inc()
			default:
				rep.Documents++
				rep.Files += rec.Files
				rep.Attached += rec.Attached

				metrics.IngestDocuments.WithLabelValues(outcomeImported).Inc()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return rep, err
	}

	l.Info().Int("documents", rep.Documents).Int("skipped", rep.Skipped).Int("failed", rep.Failed).
		Int("files", rep.Files).Int("attached", rep.Attached).Msg("ingest finished")

	in.files.AnnounceIngest(ctx, queue.IngestCompletedPayload{
		BatchID:   rep.BatchID,
		Source:    rep.Source,
		Documents: rep.Documents,
		Skipped:   rep.Skipped,
		Files:     rep.Files,
		Attached:  rep.Attached,
		Failed:    rep.Failed,
	})

	return rep, nil
}

func (in *Ingester) one(ctx context.Context, src Source, key, batch string) (Record, bool, error) {
	data, err := src.Read(ctx, key)
	if err != nil {
		return Record{}, false, fmt.Errorf("read %s: %w", key, err)
	}

	digest := Digest(data)

	if in.ledger != nil {
		seen, err := in.ledger.c.Exists(ctx, digest)
		if err != nil {
			return Record{}, false, fmt.Errorf("check ledger: %w", err)
		}

		if seen {
			return Record{}, true, nil
		}
	}

	docs, err := Parse(data)
	if err != nil {
		return Record{}, false, fmt.Errorf("parse %s: %w", key, err)
	}

	rec := Record{BatchID: batch, Key: key, At: in.now().UTC()}

	for _, d := range docs {
		n, attached, err := in.files.Import(ctx, d.Accession, d.Files)
		if err != nil {
			return Record{}, false, fmt.Errorf("import %s: %w", d.Accession, err)
		}

		rec.Files += n
		if attached {
			rec.Attached++
		}
	}

	if in.ledger != nil {
		if err := cache.Set(ctx, in.ledger.c, digest, rec, 0); err != nil {
			return Record{}, false, fmt.Errorf("record %s: %w", key, err)
		}
	}

	return rec, false, nil
}
