package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled  bool                 `mapstructure:"enabled"` // 总开关
	Study    StudyEventsConfig    `mapstructure:"study"`
	Analysis AnalysisEventsConfig `mapstructure:"analysis"`
	Ingest   IngestEventsConfig   `mapstructure:"ingest"`
}

// StudyEventsConfig 研究相关事件开关。
type StudyEventsConfig struct {
	Created  bool `mapstructure:"created"`
	Updated  bool `mapstructure:"updated"`
	Linked   bool `mapstructure:"linked"`
	Released bool `mapstructure:"released"`
}

// AnalysisEventsConfig 分析相关事件开关。
type AnalysisEventsConfig struct {
	Created bool `mapstructure:"created"`
}

// IngestEventsConfig 导入相关事件开关。
type IngestEventsConfig struct {
	Completed bool `mapstructure:"completed"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认关闭，未部署 MQ 时不影响写入
	v.SetDefault("events.enabled", false)

	v.SetDefault("events.study.created", true)
	v.SetDefault("events.study.updated", false)
	v.SetDefault("events.study.linked", true)
	v.SetDefault("events.study.released", true)

	v.SetDefault("events.analysis.created", true)
	v.SetDefault("events.ingest.completed", true)
}
