// Package metrics 目录服务的 Prometheus 指标.
//
// HTTP 指标由 middleware.Prometheus 记录，目录写入、并发重试、关联集合大小、
// 事件发布与导入文档计数由各业务包直接更新:
//
//	metrics.CatalogWrites.WithLabelValues("study", "create", "ok").Inc()
package metrics

import (
	"errors"
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/genovault/pkg/configs"
)

// 全局指标变量.
var (
	// RequestCounter HTTP 请求计数，endpoint 为路由模板.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genovault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration HTTP 请求耗时.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genovault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections 正在处理的请求数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "genovault_http_inflight_requests",
			Help: "Requests currently being served",
		},
	)

	// CatalogWrites 目录写操作计数，outcome 为 ok 或错误类别.
	CatalogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genovault_catalog_writes_total",
			Help: "Catalog write operations by entity, operation and outcome",
		},
		[]string{"entity", "op", "outcome"},
	)

	// WriteRetries 因并发冲突重试的写事务次数.
	WriteRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genovault_write_retries_total",
			Help: "Write transactions retried after a revision conflict",
		},
		[]string{"entity"},
	)

	// LinkSetSize 每次关联替换后的关联研究数量.
	LinkSetSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genovault_link_set_size",
			Help:    "Number of linked studies after a link replacement",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	// EventsPublished 事件发布计数.
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genovault_events_published_total",
			Help: "Catalog events published by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)

	// IngestDocuments 导入的 XML 文档计数，outcome 为 imported、skipped 或 failed.
	IngestDocuments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genovault_ingest_documents_total",
			Help: "ENA analysis documents processed by ingest",
		},
		[]string{"outcome"},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
)

// InitMetrics 注册指标，config.Labels 作为常量标签附加在 HTTP 与目录指标上.
// 重复调用时忽略已注册错误.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		_ = registry.Register(collectors.NewGoCollector())
		_ = registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	reg := prometheus.WrapRegistererWith(prometheus.Labels(config.Labels), registry)

	for _, c := range []prometheus.Collector{
		RequestCounter, RequestDuration, ActiveConnections,
		CatalogWrites, WriteRetries, LinkSetSize, EventsPublished, IngestDocuments,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}

	return nil
}

// StartMetricsServer 在 debugEngine 上挂载指标与可选的 pprof 端点.
func StartMetricsServer(config configs.MetricsConfig, debugEngine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	path := config.Path
	if path == "" {
		path = "/metrics"
	}

	debugEngine.GET(path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		debugEngine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
