// Package app 负责组装并运行目录服务：配置、日志、存储、事件、调度器与 HTTP 引擎.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/genovault/pkg/api"
	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/jobs"
	"github.com/yeisme/genovault/pkg/internal/router"
	"github.com/yeisme/genovault/pkg/internal/service"
	"github.com/yeisme/genovault/pkg/internal/storage"
	"github.com/yeisme/genovault/pkg/log"
	"github.com/yeisme/genovault/pkg/metrics"
	"github.com/yeisme/genovault/pkg/middleware"
	"github.com/yeisme/genovault/pkg/queue"
	"github.com/yeisme/genovault/pkg/scheduler"
	"github.com/yeisme/genovault/pkg/tracing"
)

// App 组装好的服务进程.
type App struct {
	Engine    *gin.Engine
	Catalog   *service.Catalog
	Storage   *storage.Manager
	Scheduler *scheduler.Scheduler
	config    *configs.AppConfig
}

// Bootstrap 加载配置并初始化日志、追踪与指标，CLI 的各子命令共用.
func Bootstrap(configPath string) (*configs.AppConfig, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	log.Init()

	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	return config, nil
}

// Catalog 基于存储管理器构建目录服务，MQ 可用时发布事件.
func Catalog(mgr *storage.Manager, cfg *configs.AppConfig) *service.Catalog {
	var emitter *queue.Emitter
	if mq := mgr.GetMQClient(); mq != nil {
		emitter = queue.NewEmitter(mq.Publisher(), cfg.Events)
	}

	return service.FromConfig(mgr.GetDBClient(), emitter)
}

// NewApp 初始化全部依赖；migrate 为 true 时先同步表结构.
func NewApp(ctx context.Context, configPath string, migrate bool) (*App, error) {
	config, err := Bootstrap(configPath)
	if err != nil {
		return nil, err
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if migrate {
		if err := manager.GetDBClient().Migrate(ctx); err != nil {
			_ = manager.Close()
			return nil, err
		}
	}

	cat := Catalog(manager, config)

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	if err := jobs.RegisterCronJobs(ctx, sched, manager, cat, config.Ingest); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.BodyLimitMiddleware(config.Server.MaxBodyBytes),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
	)

	api.RegisterGroup(engine, cat, config.Auth)
	router.RegisterSwaggerRoute(engine, config.Server)

	if err := metrics.StartMetricsServer(config.Metrics, engine); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("start metrics: %w", err)
	}

	return &App{
		Engine:    engine,
		Catalog:   cat,
		Storage:   manager,
		Scheduler: sched,
		config:    config,
	}, nil
}

// Run 启动调度器与 HTTP 服务，ctx 取消后优雅退出.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
		WriteTimeout:      a.config.Server.GetTimeoutDuration(),
	}

	a.Scheduler.Start()

	errCh := make(chan error, 1)

	go func() {
		log.Logger().Info().Str("addr", srv.Addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	var runErr error

	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.GetShutdownDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown http: %w", err))
	}

	return errors.Join(runErr, a.Close(shutdownCtx))
}

// Close 释放调度器、追踪与存储资源.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(
		a.Scheduler.Shutdown(),
		tracing.ShutdownTracer(ctx),
		a.Storage.Close(),
	)
}
