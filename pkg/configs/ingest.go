package configs

import "github.com/spf13/viper"

const (
	DefaultIngestCron        = "*/30 * * * *" // 每 30 分钟扫描一次
	DefaultIngestConcurrency = 4
	DefaultReleaseCron       = "5 0 * * *" // 每天 00:05 检查当日发布的研究
)

// IngestConfig ENA 分析 XML 导入配置.
type IngestConfig struct {
	Enabled     bool   `mapstructure:"enabled"`     // 是否启用定时导入
	Cron        string `mapstructure:"cron"`        // 定时表达式
	Dir         string `mapstructure:"dir"`         // 本地目录来源
	S3Prefix    string `mapstructure:"s3_prefix"`   // 对象存储来源前缀，非空时优先
	Concurrency int    `mapstructure:"concurrency" rule:"min=1,max=64"`
	ReleaseCron string `mapstructure:"release_cron"` // 研究发布通知任务
}

func (c *IngestConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("ingest.enabled", false)
	v.SetDefault("ingest.cron", DefaultIngestCron)
	v.SetDefault("ingest.dir", "data/ena")
	v.SetDefault("ingest.s3_prefix", "")
	v.SetDefault("ingest.concurrency", DefaultIngestConcurrency)
	v.SetDefault("ingest.release_cron", DefaultReleaseCron)
}
