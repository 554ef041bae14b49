package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/types"
	"github.com/yeisme/genovault/pkg/log"
)

var errServerFailure = errors.New("handler returned 5xx")

// NewBreakerSettings 按配置生成熔断参数，失败比例达到阈值时打开.
func NewBreakerSettings(name string, cfg configs.CircuitBreakerConfig) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequestsInHalf,
		Interval:    cfg.Interval(),
		Timeout:     cfg.OpenFor(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Logger().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
}

// CircuitBreakerMiddleware 基于 gobreaker 的熔断，5xx 响应计为失败.
func CircuitBreakerMiddleware(cfg configs.CircuitBreakerConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	cb := gobreaker.NewCircuitBreaker(NewBreakerSettings("http", cfg))

	return func(c *gin.Context) {
		if isSkippedPath(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		_, err := cb.Execute(func() (any, error) {
			c.Next()

			if c.Writer.Status() >= http.StatusInternalServerError {
				return nil, errServerFailure
			}

			return nil, nil
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Error:     "service temporarily unavailable",
				Exception: "UnavailableError",
			})
		}
	}
}
