package xterm

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/xterm-go/errors"
)

// ErrLogLevelOff is returned when LogLevelOff is converted to a zap level.
var ErrLogLevelOff = fmt.Errorf("xterm: log level is off")

// FromZapLevel maps a zap level onto the terminal's levels. Levels above
// error map to error; zapcore.InvalidLevel, which a no-op logger reports,
// maps to off.
func FromZapLevel(l zapcore.Level) LogLevel {
	switch {
	case l == zapcore.InvalidLevel:
		return LogLevelOff
	case l <= zapcore.DebugLevel:
		return LogLevelDebug
	case l == zapcore.InfoLevel:
		return LogLevelInfo
	case l == zapcore.WarnLevel:
		return LogLevelWarn
	default:
		return LogLevelError
	}
}

// ZapLevel maps l onto a zap level. LogLevelOff has no counterpart and
// returns ErrLogLevelOff.
func (l LogLevel) ZapLevel() (zapcore.Level, error) {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	case LogLevelOff:
		return zapcore.InvalidLevel, ErrLogLevelOff
	}
	return zapcore.InvalidLevel, errors.InvalidEnum(errors.PhaseConfig, []string{"logLevel"}, string(l), "LogLevel")
}
