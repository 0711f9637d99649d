package xterm

import (
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
)

// LogHandler receives the terminal's own log output. Set it through
// Options.Logger; the terminal filters by Options.LogLevel before calling it.
type LogHandler interface {
	Trace(message string, args ...any)
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

// LogHandlerCapability describes ILogger.
var LogHandlerCapability = bridge.Define[LogHandler]("ILogger",
	func(r bridge.Ref) JSLogHandler { return JSLogHandler{r} })

// JSLogHandler is a log handler implemented in JS.
type JSLogHandler struct{ bridge.Ref }

func (h JSLogHandler) log(method, message string, args []any) {
	if _, err := h.Call(method, append([]any{message}, args...)...); err != nil {
		Logger().Debug("log handler failed", zap.String("method", method), zap.Error(err))
	}
}

func (h JSLogHandler) Trace(message string, args ...any) { h.log("trace", message, args) }
func (h JSLogHandler) Debug(message string, args ...any) { h.log("debug", message, args) }
func (h JSLogHandler) Info(message string, args ...any)  { h.log("info", message, args) }
func (h JSLogHandler) Warn(message string, args ...any)  { h.log("warn", message, args) }
func (h JSLogHandler) Error(message string, args ...any) { h.log("error", message, args) }

// ZapLogger routes terminal logging into zap. Trace is logged at debug.
type ZapLogger struct {
	L *zap.Logger
}

// NewZapLogger returns a handler that logs to l.
func NewZapLogger(l *zap.Logger) ZapLogger {
	return ZapLogger{L: l}
}

func (z ZapLogger) fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	return []zap.Field{zap.Any("args", args)}
}

func (z ZapLogger) Trace(message string, args ...any) { z.L.Debug(message, z.fields(args)...) }
func (z ZapLogger) Debug(message string, args ...any) { z.L.Debug(message, z.fields(args)...) }
func (z ZapLogger) Info(message string, args ...any)  { z.L.Info(message, z.fields(args)...) }
func (z ZapLogger) Warn(message string, args ...any)  { z.L.Warn(message, z.fields(args)...) }
func (z ZapLogger) Error(message string, args ...any) { z.L.Error(message, z.fields(args)...) }
