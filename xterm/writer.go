package xterm

import (
	"unicode/utf8"

	"github.com/wippyai/xterm-go/errors"
)

// Writer buffers output for a terminal so that programs written against
// io.Writer can draw to it. Nothing reaches the terminal until Flush; Close
// flushes.
type Writer struct {
	term Terminal
	buf  []byte
}

// NewWriter returns a Writer for t.
func NewWriter(t Terminal) *Writer {
	return &Writer{term: t}
}

// Write appends p to the buffer. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Buffered returns the number of bytes waiting for Flush.
func (w *Writer) Buffered() int {
	return len(w.buf)
}

// Flush writes the buffer to the terminal. An incomplete UTF-8 sequence at
// the end is kept for the next flush. At an invalid byte, Flush writes what
// precedes it, drops that byte, keeps the rest buffered and returns an error
// carrying the byte's offset in the flushed chunk.
func (w *Writer) Flush() error {
	n := completeUTF8(w.buf)
	if n == 0 {
		return nil
	}
	bad := invalidUTF8(w.buf[:n])
	if bad < 0 {
		if err := w.term.Write(string(w.buf[:n])); err != nil {
			return err
		}
		w.buf = append(w.buf[:0], w.buf[n:]...)
		return nil
	}

	if bad > 0 {
		if err := w.term.Write(string(w.buf[:bad])); err != nil {
			return err
		}
	}
	w.buf = append(w.buf[:0], w.buf[bad+1:]...)
	return errors.New(errors.PhaseConvert, errors.KindInvalidInput).
		Path("Writer").
		Value(bad).
		Detail("output is not valid UTF-8 at offset %d", bad).
		Build()
}

// Close flushes the buffer. A partial rune left at the end is an error.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if len(w.buf) > 0 {
		w.buf = w.buf[:0]
		return errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			Path("Writer").
			Detail("output ends inside a UTF-8 sequence").
			Build()
	}
	return nil
}

// invalidUTF8 returns the offset of the first byte that does not start a
// valid rune, or -1.
func invalidUTF8(p []byte) int {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// completeUTF8 returns the length of p without a trailing partial rune.
func completeUTF8(p []byte) int {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(p[i]) {
			continue
		}
		if utf8.FullRune(p[i:]) {
			return len(p)
		}
		return i
	}
	return len(p)
}
