package xterm

// Theme holds terminal colors as CSS color strings. Empty entries keep the
// library default.
type Theme struct {
	Foreground          string `yaml:"foreground,omitempty"`
	Background          string `yaml:"background,omitempty"`
	Cursor              string `yaml:"cursor,omitempty"`
	CursorAccent        string `yaml:"cursorAccent,omitempty"`
	SelectionBackground string `yaml:"selectionBackground,omitempty"`
	Black               string `yaml:"black,omitempty"`
	Red                 string `yaml:"red,omitempty"`
	Green               string `yaml:"green,omitempty"`
	Yellow              string `yaml:"yellow,omitempty"`
	Blue                string `yaml:"blue,omitempty"`
	Magenta             string `yaml:"magenta,omitempty"`
	Cyan                string `yaml:"cyan,omitempty"`
	White               string `yaml:"white,omitempty"`
	BrightBlack         string `yaml:"brightBlack,omitempty"`
	BrightRed           string `yaml:"brightRed,omitempty"`
	BrightGreen         string `yaml:"brightGreen,omitempty"`
	BrightYellow        string `yaml:"brightYellow,omitempty"`
	BrightBlue          string `yaml:"brightBlue,omitempty"`
	BrightMagenta       string `yaml:"brightMagenta,omitempty"`
	BrightCyan          string `yaml:"brightCyan,omitempty"`
	BrightWhite         string `yaml:"brightWhite,omitempty"`
}

// NordTheme returns the Nord color scheme.
func NordTheme() *Theme {
	return &Theme{
		Foreground:    "#d8dee9",
		Background:    "#2e3440",
		Black:         "#343434",
		Red:           "#bf616a",
		Green:         "#a3be8c",
		Yellow:        "#ebcb8b",
		Blue:          "#81a1c1",
		Magenta:       "#b48ead",
		Cyan:          "#88c0d0",
		White:         "#e5e9f0",
		BrightBlack:   "#434c5e",
		BrightRed:     "#bf616a",
		BrightGreen:   "#a3be8c",
		BrightYellow:  "#ebcb8b",
		BrightBlue:    "#81a1c1",
		BrightMagenta: "#b48ead",
		BrightCyan:    "#8fbcbb",
		BrightWhite:   "#eceff4",
	}
}
