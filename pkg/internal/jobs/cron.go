// Package jobs 注册目录的定时任务：定期导入 ENA 分析文档，以及在研究发布当天发送通知.
package jobs

import (
	"context"
	"errors"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/ingest"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/storage"
	"github.com/yeisme/genovault/pkg/internal/storage/kv"
	"github.com/yeisme/genovault/pkg/log"
	"github.com/yeisme/genovault/pkg/scheduler"
)

// RegisterCronJobs 按配置注册任务：
//   - ingest.enabled 时按 ingest.cron 导入 ENA 文档
//   - ingest.release_cron 非空时每天通知当日发布的研究
func RegisterCronJobs(ctx context.Context, sched *scheduler.Scheduler, mgr *storage.Manager, cat *service.Catalog, cfg configs.IngestConfig) error {
	if sched == nil {
		return errors.New("scheduler is nil")
	}

	if mgr == nil || cat == nil {
		return errors.New("storage manager and catalog are required")
	}

	if cfg.Enabled {
		in, src := NewIngest(mgr, cat, cfg)

		if err := sched.AddCron(ctx, JobIngest, cfg.Cron, IngestTask(in, src)); err != nil {
			return err
		}
	}

	if cfg.ReleaseCron != "" {
		if err := sched.AddCron(ctx, JobReleaseAnnounce, cfg.ReleaseCron, ReleaseTask(cat)); err != nil {
			return err
		}
	}

	return nil
}

// NewIngest 按配置组装导入器与来源，KV 不可用时不做去重.
func NewIngest(mgr *storage.Manager, cat *service.Catalog, cfg configs.IngestConfig) (*ingest.Ingester, ingest.Source) {
	var store kv.KVStore
	if c := mgr.GetKVClient(); c != nil {
		store = c
	}

	return ingest.New(cat, store, ingest.WithConcurrency(cfg.Concurrency)), ingest.FromConfig(cfg, mgr.GetS3Client())
}

// IngestTask 执行一次导入.
func IngestTask(in *ingest.Ingester, src ingest.Source) scheduler.Task {
	return func(ctx context.Context) error {
		_, err := in.Run(ctx, src)
		return err
	}
}

// ReleaseTask 为当天发布的研究发送 gv.study.released 事件.
func ReleaseTask(cat *service.Catalog) scheduler.Task {
	return func(ctx context.Context) error {
		n, err := cat.Studies().AnnounceReleases(ctx)
		if err != nil {
			return err
		}

		if n > 0 {
			log.Logger().Info().Str("job", JobReleaseAnnounce).Int("studies", n).Msg("release events published")
		}

		return nil
	}
}
