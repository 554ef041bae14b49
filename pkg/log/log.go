// Package log 提供全局 zerolog 日志器：stderr 控制台或 JSON 输出，可选 lumberjack 轮转文件.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/yeisme/genovault/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

type requestIDKey struct{}

// Init 初始化全局 logger，重复调用无副作用.
func Init() {
	initOnce.Do(initLogger)
}

func initLogger() {
	cfg := configs.GetConfig()

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || cfg.Log.Level == "" {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", cfg.Log.Level)

		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	writers := []io.Writer{stderrWriter(cfg.Log.Format)}

	if cfg.Log.EnableFile {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	zc := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("service", "genovault").
		Str("version", configs.AppVersion)

	if cfg.Server.Debug {
		zc = zc.Caller().Stack()

		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger = zc.Logger()
	log.Logger = logger
}

func stderrWriter(format string) io.Writer {
	if format == configs.LogFormatJSON {
		return os.Stderr
	}

	return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.DateTime
		w.FieldsExclude = []string{"service", "version"}
	})
}

// Logger 返回全局 logger，首次使用时按当前配置初始化.
func Logger() *zerolog.Logger {
	initOnce.Do(initLogger)

	return &logger
}

// WithRequestID 把请求标识放进 context，FromContext 会把它带进日志字段.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID 返回 context 中的请求标识.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// FromContext 返回附带请求标识与追踪标识的子 logger.
func FromContext(ctx context.Context) zerolog.Logger {
	zc := Logger().With()

	if id := RequestID(ctx); id != "" {
		zc = zc.Str("request_id", id)
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
	}

	return zc.Logger()
}

// GinWriter 把 gin 的调试输出转成 zerolog 事件.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

// NewGinWriter 创建 GinWriter，level 是未带级别前缀时使用的级别.
func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSpace(string(p))
	lvl := w.level

	switch {
	case strings.HasPrefix(msg, "[WARNING]"):
		lvl = zerolog.WarnLevel
		msg = strings.TrimSpace(strings.TrimPrefix(msg, "[WARNING]"))
	case strings.HasPrefix(msg, "[ERROR]"):
		lvl = zerolog.ErrorLevel
		msg = strings.TrimSpace(strings.TrimPrefix(msg, "[ERROR]"))
	case strings.HasPrefix(msg, "[GIN-debug]"):
		lvl = zerolog.DebugLevel
		msg = strings.TrimSpace(strings.TrimPrefix(msg, "[GIN-debug]"))
	}

	if msg != "" {
		w.logger.WithLevel(lvl).Str("component", "gin").Msg(msg)
	}

	return len(p), nil
}
