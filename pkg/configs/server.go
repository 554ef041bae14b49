package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultPort            = 8080
	DefaultHost            = "0.0.0.0"
	DefaultReloadConfig    = true
	DefaultDebug           = false
	DefaultTimeout         = 30 // 秒
	DefaultShutdownTimeout = 10 // 秒
	DefaultMaxBodyBytes    = 4 << 20
)

type (
	// ServerConfig HTTP 服务配置.
	ServerConfig struct {
		Port            int    `mapstructure:"port"             rule:"min=1,max=65535"`
		Host            string `mapstructure:"host"             rule:"ip"`
		ReloadConfig    bool   `mapstructure:"reload_config"`
		Debug           bool   `mapstructure:"debug"`
		Timeout         int    `mapstructure:"timeout"          rule:"min=1,max=300"`
		ShutdownTimeout int    `mapstructure:"shutdown_timeout" rule:"min=1,max=300"`
		// MaxBodyBytes 请求体上限，批量创建研究时关联列表可能较长.
		MaxBodyBytes int64 `mapstructure:"max_body_bytes" rule:"min=1024"`
	}
)

// GetTimeoutDuration 读写超时.
func (s *ServerConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// GetShutdownDuration 优雅退出时等待在途请求的上限.
func (s *ServerConfig) GetShutdownDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func (s *ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.reload_config", DefaultReloadConfig)
	v.SetDefault("server.debug", DefaultDebug)
	v.SetDefault("server.timeout", DefaultTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
}
