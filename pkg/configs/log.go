package configs

import (
	"github.com/spf13/viper"
)

// 日志输出格式.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

const (
	DefaultLogEnableFile = false
	DefaultLogFilePath   = "logs/genovault.log"
	DefaultLogMaxSize    = 100 // MB
	DefaultLogMaxBackups = 7
	DefaultLogMaxAge     = 28 // 天
	DefaultLogCompress   = true
	DefaultLogLevel      = "info"
	DefaultLogFormat     = LogFormatConsole
)

type (
	// LogConfig 日志相关配置，文件输出总是 JSON 行，format 只影响 stderr.
	LogConfig struct {
		EnableFile bool   `mapstructure:"enable_file"`
		FilePath   string `mapstructure:"file_path"`
		MaxSize    int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age_days"`
		Compress   bool   `mapstructure:"compress"`
		Level      string `mapstructure:"level"  rule:"oneof=trace debug info warn error fatal panic disabled"`
		Format     string `mapstructure:"format" rule:"oneof=console json"`
	}
)

func (l *LogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("log.enable_file", DefaultLogEnableFile)
	v.SetDefault("log.file_path", DefaultLogFilePath)
	v.SetDefault("log.max_size_mb", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age_days", DefaultLogMaxAge)
	v.SetDefault("log.compress", DefaultLogCompress)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}
