package foreign

import "go.uber.org/zap"

// zapPrinter routes console.log/warn/error to the package logger.
type zapPrinter struct{}

func (zapPrinter) Log(s string) {
	Logger().Info(s, zap.String("source", "console"))
}

func (zapPrinter) Warn(s string) {
	Logger().Warn(s, zap.String("source", "console"))
}

func (zapPrinter) Error(s string) {
	Logger().Error(s, zap.String("source", "console"))
}
