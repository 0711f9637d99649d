package xterm

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/dop251/goja"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/xterm-go/bridge"
	"github.com/wippyai/xterm-go/errors"
	"github.com/wippyai/xterm-go/foreign"
)

// Options configures a terminal. Zero fields are left to the library
// default, so only the settings that differ need to be filled in.
type Options struct {
	AllowProposedAPI           bool               `yaml:"allowProposedApi,omitempty"`
	AllowTransparency          bool               `yaml:"allowTransparency,omitempty"`
	BellSound                  string             `yaml:"bellSound,omitempty"`
	BellStyle                  BellStyle          `yaml:"bellStyle,omitempty"`
	Cols                       int                `yaml:"cols,omitempty"`
	ConvertEOL                 bool               `yaml:"convertEol,omitempty"`
	CursorBlink                bool               `yaml:"cursorBlink,omitempty"`
	CursorStyle                CursorStyle        `yaml:"cursorStyle,omitempty"`
	CursorWidth                int                `yaml:"cursorWidth,omitempty"`
	DisableStdin               bool               `yaml:"disableStdin,omitempty"`
	DrawBoldTextInBrightColors bool               `yaml:"drawBoldTextInBrightColors,omitempty"`
	FastScrollModifier         FastScrollModifier `yaml:"fastScrollModifier,omitempty"`
	FastScrollSensitivity      float64            `yaml:"fastScrollSensitivity,omitempty"`
	FontFamily                 string             `yaml:"fontFamily,omitempty"`
	FontSize                   float64            `yaml:"fontSize,omitempty"`
	FontWeight                 FontWeight         `yaml:"fontWeight,omitempty"`
	FontWeightBold             FontWeight         `yaml:"fontWeightBold,omitempty"`
	LetterSpacing              float64            `yaml:"letterSpacing,omitempty"`
	LineHeight                 float64            `yaml:"lineHeight,omitempty"`
	LogLevel                   LogLevel           `yaml:"logLevel,omitempty"`
	MacOptionIsMeta            bool               `yaml:"macOptionIsMeta,omitempty"`
	MinimumContrastRatio       float64            `yaml:"minimumContrastRatio,omitempty"`
	RendererType               RendererType       `yaml:"rendererType,omitempty"`
	Rows                       int                `yaml:"rows,omitempty"`
	ScreenReaderMode           bool               `yaml:"screenReaderMode,omitempty"`
	ScrollSensitivity          float64            `yaml:"scrollSensitivity,omitempty"`
	Scrollback                 int                `yaml:"scrollback,omitempty"`
	TabStopWidth               int                `yaml:"tabStopWidth,omitempty"`
	Theme                      *Theme             `yaml:"theme,omitempty"`
	WindowsMode                bool               `yaml:"windowsMode,omitempty"`
	WordSeparator              string             `yaml:"wordSeparator,omitempty"`

	// Logger receives the terminal's log output instead of the console.
	Logger LogHandler `yaml:"-"`
}

// LoadOptions reads options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return ParseOptions(data)
}

// ParseOptions decodes YAML options. Unknown keys and enum values outside
// their set are rejected.
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode options")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Validate checks enum fields and sizes.
func (o *Options) Validate() error {
	rv := reflect.ValueOf(o).Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		v := rv.Field(i)
		if f.Type.Kind() != reflect.String || v.Len() == 0 {
			continue
		}
		if _, isEnum := enumValues[f.Type.Name()]; isEnum && !validEnum(f.Type.Name(), v.String()) {
			return errors.InvalidEnum(errors.PhaseConfig, []string{yamlName(f)}, v.String(), f.Type.Name())
		}
	}
	for name, n := range map[string]int{"cols": o.Cols, "rows": o.Rows, "scrollback": o.Scrollback, "tabStopWidth": o.TabStopWidth} {
		if n < 0 {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path(name).
				Value(n).
				Detail("must not be negative").
				Build()
		}
	}
	return nil
}

// object builds the options object passed to the Terminal constructor.
// Setters installed on Object.prototype by scripts can make this fail.
func (o *Options) object(b *bridge.Binder) (*goja.Object, error) {
	rt := b.Runtime()
	obj, err := plainObject(rt, reflect.ValueOf(o).Elem())
	if err != nil {
		return nil, err
	}
	if o.Logger != nil {
		if err := rt.SetProperty(obj, "logger", LogHandlerCapability.To(b, o.Logger).Object()); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// plainObject copies the non-zero yaml-tagged fields of a struct into a new
// object. Named string types are passed as plain strings.
func plainObject(rt *foreign.Runtime, rv reflect.Value) (*goja.Object, error) {
	obj := rt.NewObject()
	t := rv.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name := yamlName(f)
		v := rv.Field(i)
		if name == "-" || v.IsZero() {
			continue
		}
		var x any
		switch v.Kind() {
		case reflect.Bool:
			x = v.Bool()
		case reflect.Int:
			x = v.Int()
		case reflect.Float64:
			x = v.Float()
		case reflect.String:
			x = v.String()
		case reflect.Pointer:
			nested, err := plainObject(rt, v.Elem())
			if err != nil {
				return nil, err
			}
			x = nested
		default:
			continue
		}
		if err := rt.SetProperty(obj, name, x); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func yamlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" {
		return f.Name
	}
	return name
}
