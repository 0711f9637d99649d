package xterm

import "slices"

// BellStyle selects how the bell is signalled.
type BellStyle string

const (
	BellStyleNone  BellStyle = "none"
	BellStyleSound BellStyle = "sound"
)

// CursorStyle selects the cursor shape.
type CursorStyle string

const (
	CursorStyleBlock     CursorStyle = "block"
	CursorStyleUnderline CursorStyle = "underline"
	CursorStyleBar       CursorStyle = "bar"
)

// FastScrollModifier selects the key that enables fast scrolling.
type FastScrollModifier string

const (
	FastScrollModifierAlt   FastScrollModifier = "alt"
	FastScrollModifierCtrl  FastScrollModifier = "ctrl"
	FastScrollModifierShift FastScrollModifier = "shift"
)

// FontWeight is a CSS font weight.
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
	FontWeight100    FontWeight = "100"
	FontWeight200    FontWeight = "200"
	FontWeight300    FontWeight = "300"
	FontWeight400    FontWeight = "400"
	FontWeight500    FontWeight = "500"
	FontWeight600    FontWeight = "600"
	FontWeight700    FontWeight = "700"
	FontWeight800    FontWeight = "800"
	FontWeight900    FontWeight = "900"
)

// LogLevel is the terminal's logging threshold.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelOff   LogLevel = "off"
)

// RendererType selects the renderer. The headless terminal accepts both.
type RendererType string

const (
	RendererTypeDOM    RendererType = "dom"
	RendererTypeCanvas RendererType = "canvas"
)

var enumValues = map[string][]string{
	"BellStyle":          {"none", "sound"},
	"CursorStyle":        {"block", "underline", "bar"},
	"FastScrollModifier": {"alt", "ctrl", "shift"},
	"FontWeight":         {"normal", "bold", "100", "200", "300", "400", "500", "600", "700", "800", "900"},
	"LogLevel":           {"debug", "info", "warn", "error", "off"},
	"RendererType":       {"dom", "canvas"},
}

func validEnum(enum, value string) bool {
	return slices.Contains(enumValues[enum], value)
}
