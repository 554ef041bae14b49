package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultMaxBatchSize = 512
	DefaultMaxQueueSize = 2048
)

// TracingConfig OpenTelemetry 追踪配置.
type TracingConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	ServiceName    string            `mapstructure:"service_name"`
	ServiceVersion string            `mapstructure:"service_version"`
	ExporterType   string            `mapstructure:"exporter_type"` // otlp-http | otlp-grpc | zipkin
	Endpoint       string            `mapstructure:"endpoint"`
	SampleRate     float64           `mapstructure:"sample_rate"` // 根 span 采样率，子 span 跟随父级
	BatchTimeout   time.Duration     `mapstructure:"batch_timeout"`
	MaxBatchSize   int               `mapstructure:"max_batch_size"`
	MaxQueueSize   int               `mapstructure:"max_queue_size"`
	ResourceLabels map[string]string `mapstructure:"resource_labels"` // 附加资源属性，如 deployment.environment
}

func (c *TracingConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "genovault")
	v.SetDefault("tracing.service_version", AppVersion)
	v.SetDefault("tracing.exporter_type", "otlp-http")
	v.SetDefault("tracing.endpoint", "http://localhost:4318")
	v.SetDefault("tracing.sample_rate", 1.0)
	v.SetDefault("tracing.batch_timeout", "5s")
	v.SetDefault("tracing.max_batch_size", DefaultMaxBatchSize)
	v.SetDefault("tracing.max_queue_size", DefaultMaxQueueSize)
	v.SetDefault("tracing.resource_labels", map[string]string{
		"deployment.environment": "dev",
	})
}
