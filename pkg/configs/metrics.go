package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Prometheus 指标，导出在调试引擎上.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"    rule:"startswith=/"`
	// RuntimeMetrics 额外导出 Go 运行时与进程指标.
	RuntimeMetrics bool `mapstructure:"runtime_metrics"`
	// Labels 附加在所有目录指标上的常量标签，如 {"archive": "eva"}.
	Labels map[string]string `mapstructure:"labels"`
	Pprof  bool              `mapstructure:"pprof"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.labels", map[string]string{"version": AppVersion})
	v.SetDefault("metrics.pprof", false)
}
