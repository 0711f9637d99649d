package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/disposable"
	"github.com/wippyai/xterm-go/foreign"
	"github.com/wippyai/xterm-go/xterm"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Path to a JS file to run against the terminal")
		configFile  = flag.String("config", "", "Path to a YAML options file")
		cols        = flag.Int("cols", 0, "Terminal columns (default: config, then tty width)")
		rows        = flag.Int("rows", 0, "Terminal rows (default: config, then tty height)")
		verbose     = flag.Bool("v", false, "Log bridge and terminal activity to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *scriptFile == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: run -script <file.js> [-config opts.yaml] [-cols N -rows N] [-v]")
		fmt.Fprintln(os.Stderr, "       run -i [-config opts.yaml]  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts, err := loadOptions(*configFile, *cols, *rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	leaks := watchLeaks(disposable.Live(), log)
	if *interactive {
		err = runInteractive(opts, log)
	} else {
		err = run(*scriptFile, opts, log)
	}
	leaks.stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	foreign.SetLogger(log.Named("foreign"))
	bridge.SetLogger(log.Named("bridge"))
	disposable.SetLogger(log.Named("disposable"))
	xterm.SetLogger(log.Named("xterm"))
	return log, nil
}

func loadOptions(path string, cols, rows int) (*xterm.Options, error) {
	opts := &xterm.Options{}
	if path != "" {
		var err error
		if opts, err = xterm.LoadOptions(path); err != nil {
			return nil, err
		}
	}
	if cols > 0 {
		opts.Cols = cols
	}
	if rows > 0 {
		opts.Rows = rows
	}
	if opts.Cols == 0 && opts.Rows == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts.Cols, opts.Rows = w, h
		}
	}
	return opts, nil
}

// session is a terminal plus the listeners the CLI keeps on it.
type session struct {
	b         *bridge.Binder
	term      xterm.Terminal
	owner     *disposable.Wrapper[xterm.Terminal]
	listeners *disposable.Group
	title     string
}

func newSession(opts *xterm.Options, log *zap.Logger) (*session, error) {
	if opts.LogLevel == "" {
		opts.LogLevel = xterm.FromZapLevel(log.Level())
	}
	if opts.Logger == nil {
		opts.Logger = xterm.NewZapLogger(log.Named("terminal"))
	}

	b, err := xterm.NewRuntime()
	if err != nil {
		return nil, fmt.Errorf("create runtime: %w", err)
	}
	t, err := xterm.NewTerminal(b, opts)
	if err != nil {
		return nil, fmt.Errorf("create terminal: %w", err)
	}
	s := &session{
		b:         b,
		term:      t,
		owner:     disposable.New(b, t, disposable.WithKind("terminal")),
		listeners: disposable.NewGroup(),
	}

	h, err := t.AttachTitleChangeEventListener(func(title string) {
		s.title = title
		log.Debug("title changed", zap.String("title", title))
	})
	if err != nil {
		s.close(log)
		return nil, err
	}
	if err := s.listeners.Add(h); err != nil {
		s.close(log)
		return nil, err
	}

	if err := b.Runtime().Set("term", t.Object()); err != nil {
		s.close(log)
		return nil, err
	}
	return s, nil
}

func (s *session) eval(name, src string) (string, error) {
	v, err := s.b.Runtime().Eval(name, src)
	if err != nil {
		return "", err
	}
	return describe(v), nil
}

func describe(v goja.Value) string {
	if obj, ok := v.(*goja.Object); ok {
		if _, isFn := goja.AssertFunction(obj); !isFn {
			return fmt.Sprintf("%v", obj.Export())
		}
	}
	if v == nil {
		return "undefined"
	}
	return v.String()
}

// screen returns the visible rows, trailing blank rows dropped.
func (s *session) screen() []string {
	buf, err := s.term.ActiveBuffer()
	if err != nil {
		return nil
	}
	all := buf.Lines()
	start := min(buf.BaseY(), len(all))
	end := min(start+s.term.Rows(), len(all))
	visible := slices.Clone(all[start:end])
	for len(visible) > 0 && strings.TrimSpace(visible[len(visible)-1]) == "" {
		visible = visible[:len(visible)-1]
	}
	return visible
}

func (s *session) close(log *zap.Logger) {
	if n := disposable.Sweep(s.b); n > 0 {
		log.Debug("disposed collected wrappers", zap.Int("count", n))
	}
	if err := s.listeners.Close(); err != nil {
		log.Warn("closing listeners failed", zap.Error(err))
	}
	if err := s.owner.Close(); err != nil {
		log.Warn("disposing terminal failed", zap.Error(err))
	}
}

func run(scriptFile string, opts *xterm.Options, log *zap.Logger) error {
	src, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	s, err := newSession(opts, log)
	if err != nil {
		return err
	}
	defer s.close(log)

	result, err := s.eval(scriptFile, string(src))
	if err != nil {
		return fmt.Errorf("run %s: %w", scriptFile, err)
	}

	if s.title != "" {
		fmt.Printf("--- %s ---\n", s.title)
	}
	for _, line := range s.screen() {
		fmt.Println(line)
	}
	if result != "undefined" {
		fmt.Printf("\nResult: %s\n", result)
	}
	return nil
}
