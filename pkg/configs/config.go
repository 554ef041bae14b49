// Package configs 读取目录服务配置.
//
// 配置来源按优先级从高到低：GENOVAULT_ 前缀的环境变量（"." 换成 "_"，
// 如 GENOVAULT_DB_TYPE=pg）、配置文件（yaml、json、toml、dotenv）、各子配置的 setDefaults.
// 加载后整体经过 rule 校验，非法配置在启动时报错.
//
//	if err := configs.InitConfig("./configs"); err != nil {
//		return err
//	}
//
//	dsn := configs.GetConfig().DB.GetDSN()
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/genovault/pkg/rule"
)

// AppVersion 应用版本，构建时可通过 -ldflags "-X" 覆盖.
var AppVersion = "0.1.0"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		DB             DBConfig             `mapstructure:"db"`
		S3             S3Config             `mapstructure:"s3"`  // 导入来源
		MQ             MQConfig             `mapstructure:"mq"`  // 事件总线
		KV             KVConfig             `mapstructure:"kv"`  // 导入去重台账
		Server         ServerConfig         `mapstructure:"server"`
		Log            LogConfig            `mapstructure:"log"`
		Metrics        MetricsConfig        `mapstructure:"metrics"`
		Tracing        TracingConfig        `mapstructure:"tracing"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
		Auth           AuthConfig           `mapstructure:"auth"`
		Events         EventsConfig         `mapstructure:"events"`
		Catalog        CatalogConfig        `mapstructure:"catalog"`
		Ingest         IngestConfig         `mapstructure:"ingest"`
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载配置到全局实例，server.reload_config 为 true 时监听文件变化.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	// path 可以是配置文件，也可以是包含 config.<ext> 的目录
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.SetEnvPrefix("GENOVAULT")
	appViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	appViper.AutomaticEnv()

	// 读取配置，找不到配置文件时只使用默认值与环境变量
	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateStruct(&globalConfig); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var c AppConfig

	c.Server.setDefaults(v)
	c.DB.setDefaults(v)
	c.S3.setDefaults(v)
	c.MQ.setDefaults(v)
	c.KV.setDefaults(v)
	c.Log.setDefaults(v)
	c.Metrics.setDefaults(v)
	c.Tracing.setDefaults(v)
	c.RateLimit.setDefaults(v)
	c.CircuitBreaker.setDefaults(v)
	c.Auth.setDefaults(v)
	c.Events.setDefaults(v)
	c.Catalog.setDefaults(v)
	c.Ingest.setDefaults(v)
}

// reloadConfigs 监听配置文件，新配置校验通过后才替换当前配置.
func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var next AppConfig
		if err := v.Unmarshal(&next); err != nil {
			fmt.Fprintf(os.Stderr, "config reload %s: %v\n", e.Name, err)
			return
		}

		if err := rule.ValidateStruct(&next); err != nil {
			fmt.Fprintf(os.Stderr, "config reload %s rejected: %v\n", e.Name, err)
			return
		}

		globalConfig = next

		fmt.Fprintf(os.Stderr, "config reloaded from %s\n", e.Name)
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例，未调用 InitConfig 时为 nil.
func GetViper() *viper.Viper {
	return appViper
}

// Default 返回仅由默认值构成的配置，不读取文件与环境变量.
func Default() AppConfig {
	v := viper.New()
	setAllDefaults(v)

	var c AppConfig
	_ = v.Unmarshal(&c)

	return c
}
