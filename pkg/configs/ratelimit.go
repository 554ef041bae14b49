package configs

import "github.com/spf13/viper"

const (
	DefaultRateLimitEnabled    = false
	DefaultRateLimitRPS        = 50.0
	DefaultRateLimitBurst      = 100
	DefaultRateLimitWriteRPS   = 5.0
	DefaultRateLimitWriteBurst = 10
	DefaultRateLimitKey        = "ip"
)

// RateLimitConfig 令牌桶限流. 读写分桶，写请求（策展）配额单独设置.
type RateLimitConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	RPS        float64 `mapstructure:"rps"`
	Burst      int     `mapstructure:"burst"`
	WriteRPS   float64 `mapstructure:"write_rps"` // <=0 时写请求与读请求共用一个桶
	WriteBurst int     `mapstructure:"write_burst"`
	// Key 限流维度：global、ip、principal（代理注入的邮箱，缺失时退回 IP）、header:Header-Name
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.write_rps", DefaultRateLimitWriteRPS)
	v.SetDefault("rate_limit.write_burst", DefaultRateLimitWriteBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
}
