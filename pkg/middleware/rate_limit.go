package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/genovault/pkg/configs"
	"github.com/yeisme/genovault/pkg/internal/types"
)

const limiterIdle = 15 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet 按键惰性创建令牌桶，闲置超过 limiterIdle 的桶在清扫时回收.
type limiterSet struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	swept   time.Time
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	return &limiterSet{buckets: map[string]*bucket{}, limit: rate.Limit(rps), burst: max(burst, 1)}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.swept) > limiterIdle {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > limiterIdle {
				delete(s.buckets, k)
			}
		}

		s.swept = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}

	b.lastSeen = now

	return b.limiter
}

// RateLimitMiddleware 基于令牌桶的限流，超限返回 429 并带 Retry-After.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	reads := newLimiterSet(cfg.RPS, cfg.Burst)

	writes := reads
	if cfg.WriteRPS > 0 {
		writes = newLimiterSet(cfg.WriteRPS, cfg.WriteBurst)
	}

	keyOf := rateKeyFunc(strings.ToLower(strings.TrimSpace(cfg.Key)))

	return func(c *gin.Context) {
		set := reads
		if !isReadOnly(c.Request.Method) {
			set = writes
		}

		lim := set.get(keyOf(c), time.Now())
		if lim.Allow() {
			c.Next()
			return
		}

		wait := time.Second
		if r := lim.Reserve(); r.OK() {
			wait = max(r.Delay(), time.Second)
			r.Cancel()
		}

		c.Header("Retry-After", strconv.Itoa(int(wait.Round(time.Second)/time.Second)))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
			Error:     "rate limit exceeded, please try again later",
			Exception: "RateLimitError",
		})
	}
}

func rateKeyFunc(mode string) func(*gin.Context) string {
	switch {
	case mode == "global" || mode == "":
		return func(*gin.Context) string { return "global" }
	case mode == "principal":
		return func(c *gin.Context) string {
			if p := Principal(c); p != "" {
				return "principal:" + p
			}

			return clientIP(c)
		}
	case strings.HasPrefix(mode, "header:"):
		h := strings.TrimPrefix(mode, "header:")

		return func(c *gin.Context) string {
			if v := c.GetHeader(h); v != "" {
				return "header:" + v
			}

			return clientIP(c)
		}
	default:
		return clientIP
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}

	return "unknown"
}
