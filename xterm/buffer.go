package xterm

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/xterm-go/bridge"
)

// Buffer is a terminal buffer: the visible rows plus scrollback.
type Buffer struct{ bridge.Ref }

// BufferCapability labels IBuffer objects.
var BufferCapability = bridge.DefineForeign("IBuffer", func(r bridge.Ref) Buffer { return Buffer{r} })

// Length returns the number of lines, scrollback included.
func (b Buffer) Length() int { return int(b.Get("length").ToInteger()) }

// CursorX returns the cursor column.
func (b Buffer) CursorX() int { return int(b.Get("cursorX").ToInteger()) }

// CursorY returns the cursor row relative to BaseY.
func (b Buffer) CursorY() int { return int(b.Get("cursorY").ToInteger()) }

// BaseY returns the line index of the top visible row.
func (b Buffer) BaseY() int { return int(b.Get("baseY").ToInteger()) }

// ViewportY returns the line index of the top row of the viewport.
func (b Buffer) ViewportY() int { return int(b.Get("viewportY").ToInteger()) }

// Line returns line y. It reports false when y is out of range.
func (b Buffer) Line(y int) (BufferLine, bool) {
	v, err := b.Call("getLine", y)
	if err != nil {
		Logger().Debug("getLine failed", zap.Int("y", y), zap.Error(err))
		return BufferLine{}, false
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return BufferLine{}, false
	}
	return BufferLine{bridge.NewRef(b.Runtime(), obj, nil)}, true
}

// Lines returns every line with trailing whitespace trimmed.
func (b Buffer) Lines() []string {
	n := b.Length()
	out := make([]string, 0, n)
	for y := range n {
		line, ok := b.Line(y)
		if !ok {
			break
		}
		out = append(out, line.String())
	}
	return out
}

// BufferLine is one line of a Buffer.
type BufferLine struct{ bridge.Ref }

// Length returns the number of cells.
func (l BufferLine) Length() int { return int(l.Get("length").ToInteger()) }

// IsWrapped reports whether the line continues the previous one.
func (l BufferLine) IsWrapped() bool { return l.Get("isWrapped").ToBoolean() }

// TranslateToString returns the text of columns [start, end). A negative
// end means the end of the line.
func (l BufferLine) TranslateToString(trimRight bool, start, end int) string {
	var endArg any = end
	if end < 0 {
		endArg = goja.Undefined()
	}
	v, err := l.Call("translateToString", trimRight, start, endArg)
	if err != nil {
		Logger().Debug("translateToString failed", zap.Error(err))
		return ""
	}
	return v.String()
}

// String returns the whole line with trailing whitespace trimmed.
func (l BufferLine) String() string {
	return l.TranslateToString(true, 0, -1)
}
