package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	ctxPkg "github.com/yeisme/genovault/pkg/context"
	"github.com/yeisme/genovault/pkg/log"
)

// RequestIDHeader 请求标识头，缺失时生成 UUID 并回写.
const RequestIDHeader = "X-Request-ID"

// GinLoggerMiddleware 为每个请求记录一条访问日志，5xx 记为 error，4xx 记为 warn.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))

		c.Next()

		status := c.Writer.Status()
		l := log.FromContext(c.Request.Context())

		ev := l.WithLevel(levelFor(status)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.RequestURI()).
			Str("client_ip", c.ClientIP()).
			Str("role", GetRole(c).String())

		if p := ctxPkg.Principal(c.Request.Context()); p != "" {
			ev = ev.Str("principal", p)
		}

		if len(c.Errors) > 0 {
			ev = ev.Str("error", c.Errors.String())
		}

		ev.Msg("http request")
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
