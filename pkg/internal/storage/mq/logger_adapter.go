package mq

import (
	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// zerologAdapter 让 watermill 写入应用的 zerolog.
// watermill 的 Info 噪音较多，降为 debug 记录；Error 保持原级别.
type zerologAdapter struct {
	l zerolog.Logger
}

func newLoggerAdapter(base *zerolog.Logger) watermill.LoggerAdapter {
	return &zerologAdapter{l: base.With().Str("component", "watermill").Logger()}
}

func (z *zerologAdapter) log(ev *zerolog.Event, msg string, fields watermill.LogFields) {
	ev.Fields(map[string]any(fields)).Msg(msg)
}

func (z *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	z.log(z.l.Error().Err(err), msg, fields)
}

func (z *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	z.log(z.l.Debug(), msg, fields)
}

func (z *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	z.log(z.l.Debug(), msg, fields)
}

func (z *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	z.log(z.l.Trace(), msg, fields)
}

func (z *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zerologAdapter{l: z.l.With().Fields(map[string]any(fields)).Logger()}
}
