package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCBEnabled           = false
	DefaultCBFailureRate       = 0.5
	DefaultCBMinRequests       = 20
	DefaultCBIntervalSeconds   = 60
	DefaultCBTimeoutSeconds    = 30
	DefaultCBMaxRequestsInHalf = 5
)

// CircuitBreakerConfig HTTP 熔断. 健康检查本身会返回 503，
// 所以 SkipPaths 下的请求既不计数也不被拦截.
type CircuitBreakerConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	FailureRate       float64  `mapstructure:"failure_rate"         rule:"min=0,max=1"`
	MinRequests       uint32   `mapstructure:"min_requests"`
	IntervalSeconds   int      `mapstructure:"interval_seconds"`
	TimeoutSeconds    int      `mapstructure:"timeout_seconds"`
	MaxRequestsInHalf uint32   `mapstructure:"max_requests_in_half"`
	SkipPaths         []string `mapstructure:"skip_paths"`
}

// Interval 闭合状态下计数清零的周期.
func (c CircuitBreakerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// OpenFor 打开状态持续多久后进入半开.
func (c CircuitBreakerConfig) OpenFor() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", DefaultCBEnabled)
	v.SetDefault("circuit_breaker.failure_rate", DefaultCBFailureRate)
	v.SetDefault("circuit_breaker.min_requests", DefaultCBMinRequests)
	v.SetDefault("circuit_breaker.interval_seconds", DefaultCBIntervalSeconds)
	v.SetDefault("circuit_breaker.timeout_seconds", DefaultCBTimeoutSeconds)
	v.SetDefault("circuit_breaker.max_requests_in_half", DefaultCBMaxRequestsInHalf)
	v.SetDefault("circuit_breaker.skip_paths", []string{"/api/v1/health", "/metrics"})
}
