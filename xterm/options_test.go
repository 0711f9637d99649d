package xterm

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dop251/goja"
	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/xterm-go/errors"
)

const optionsYAML = `
cols: 100
rows: 30
cursorStyle: bar
cursorBlink: true
fontWeight: "600"
logLevel: warn
scrollback: 50
theme:
  background: "#000000"
  foreground: "#ffffff"
`

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]byte(optionsYAML))
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}

	want := &Options{
		Cols:        100,
		Rows:        30,
		CursorStyle: CursorStyleBar,
		CursorBlink: true,
		FontWeight:  FontWeight600,
		LogLevel:    LogLevelWarn,
		Scrollback:  50,
		Theme:       &Theme{Background: "#000000", Foreground: "#ffffff"},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptions_Empty(t *testing.T) {
	opts, err := ParseOptions(nil)
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}
	if diff := cmp.Diff(&Options{}, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want *errors.Error
	}{
		{"bad enum", "cursorStyle: square", &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidEnum}},
		{"bad font weight", "fontWeight: heavy", &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidEnum}},
		{"unknown key", "colz: 10", &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}},
		{"negative size", "rows: -1", &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}},
		{"wrong type", "cols: wide", &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(tt.yaml))
			if !stderrors.Is(err, tt.want) {
				t.Errorf("got %v, want %s/%s", err, tt.want.Phase, tt.want.Kind)
			}
		})
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "term.yaml")
	if err := os.WriteFile(path, []byte(optionsYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.Cols != 100 || opts.CursorStyle != CursorStyleBar {
		t.Errorf("unexpected options %+v", opts)
	}

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound}) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestOptions_ReachTerminal(t *testing.T) {
	opts, err := ParseOptions([]byte(optionsYAML))
	if err != nil {
		t.Fatal(err)
	}
	_, term := newTerminal(t, opts)

	if term.Cols() != 100 || term.Rows() != 30 {
		t.Errorf("size = %dx%d, want 100x30", term.Cols(), term.Rows())
	}
	got := make(map[string]any)
	for _, name := range []string{"cursorStyle", "cursorBlink", "fontWeight", "logLevel", "scrollback", "tabStopWidth"} {
		got[name] = term.Option(name).Export()
	}
	want := map[string]any{
		"cursorStyle":  "bar",
		"cursorBlink":  true,
		"fontWeight":   "600",
		"logLevel":     "warn",
		"scrollback":   int64(50),
		"tabStopWidth": int64(8),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	theme, ok := term.Option("theme").(*goja.Object)
	if !ok {
		t.Fatal("theme is not an object")
	}
	if bg := theme.Get("background").String(); bg != "#000000" {
		t.Errorf("background = %q", bg)
	}
	if v := theme.Get("red"); v != nil {
		t.Errorf("unset colors should not be passed, got red = %v", v)
	}
}

func TestNordTheme(t *testing.T) {
	_, term := newTerminal(t, &Options{Theme: NordTheme()})

	theme, ok := term.Option("theme").(*goja.Object)
	if !ok {
		t.Fatal("theme is not an object")
	}
	var got Theme
	for key, dst := range map[string]*string{
		"background": &got.Background,
		"foreground": &got.Foreground,
		"brightCyan": &got.BrightCyan,
	} {
		*dst = theme.Get(key).String()
	}
	want := Theme{Background: "#2e3440", Foreground: "#d8dee9", BrightCyan: "#8fbcbb"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("theme mismatch (-want +got):\n%s", diff)
	}
}
