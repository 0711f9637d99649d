package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/xterm-go/xterm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#81A1C1"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chrome is the number of rows and columns used around the terminal screen.
const (
	chromeRows = 8
	chromeCols = 2
)

type inputMode int

const (
	modeScript inputMode = iota
	modeKeys
)

func (m inputMode) String() string {
	if m == modeKeys {
		return "keys"
	}
	return "script"
}

type interactiveModel struct {
	err    error
	s      *session
	log    *zap.Logger
	input  textinput.Model
	result string
	screen []string
	keys   int
	mode   inputMode
}

func newInteractiveModel(s *session, log *zap.Logger) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "js> "
	ti.Placeholder = `term.writeln("hello")`
	ti.Width = 60
	ti.Focus()

	m := &interactiveModel{s: s, log: log, input: ti}
	m.refresh()
	return m
}

// echo mirrors typed data back into the terminal, as a shell with local echo
// would.
func (m *interactiveModel) echo() error {
	hKey, err := m.s.term.AttachKeyEventListener(func(xterm.KeyEvent) { m.keys++ })
	if err != nil {
		return err
	}
	if err := m.s.listeners.Add(hKey); err != nil {
		return err
	}
	hData, err := m.s.term.AttachDataEventListener(func(data string) {
		out := strings.ReplaceAll(data, "\r", "\r\n")
		if err := m.s.term.Write(out); err != nil {
			m.log.Warn("echo failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	return m.s.listeners.Add(hData)
}

func (m *interactiveModel) refresh() {
	m.screen = m.s.screen()
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := max(msg.Width-chromeCols, 10)
		rows := max(msg.Height-chromeRows, 2)
		if err := m.s.term.Resize(cols, rows); err != nil {
			m.err = err
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			if m.mode == modeScript {
				m.mode = modeKeys
				m.input.Blur()
			} else {
				m.mode = modeScript
				m.input.Focus()
			}
			return m, nil
		}

		if m.mode == modeKeys {
			m.pressKey(msg)
			m.refresh()
			return m, nil
		}

		if msg.String() == "enter" {
			src := m.input.Value()
			m.input.SetValue("")
			m.result, m.err = m.s.eval("repl", src)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) pressKey(msg tea.KeyMsg) {
	ev := xterm.KeyboardEvent{Key: string(msg.Runes), AltKey: msg.Alt}
	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = "\r"
	case tea.KeyBackspace:
		ev.Key = "\x7f"
	case tea.KeyTab:
		ev.Key = "\t"
	case tea.KeySpace:
		ev.Key = " "
	case tea.KeyRunes:
	default:
		return
	}
	if err := m.s.term.PressKey(ev); err != nil {
		m.err = err
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	title := "xterm-go"
	if m.s.title != "" {
		title += " - " + m.s.title
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" ")
	b.WriteString(modeStyle.Render(fmt.Sprintf("%dx%d  mode: %s  keys: %d",
		m.s.term.Cols(), m.s.term.Rows(), m.mode, m.keys)))
	b.WriteString("\n")

	rows := make([]string, m.s.term.Rows())
	copy(rows, m.screen)
	b.WriteString(screenStyle.Width(m.s.term.Cols()).Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if m.mode == modeScript {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(helpStyle.Render("typing goes to the terminal"))
	}
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.result != "":
		b.WriteString(resultStyle.Render(m.result))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter eval • ctrl+t toggle script/keys • ctrl+c quit"))

	return b.String()
}

func runInteractive(opts *xterm.Options, log *zap.Logger) error {
	if opts.Cols == 0 && opts.Rows == 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts.Cols = max(w-chromeCols, 10)
			opts.Rows = max(h-chromeRows, 2)
		}
	}

	s, err := newSession(opts, log)
	if err != nil {
		return err
	}
	defer s.close(log)

	m := newInteractiveModel(s, log)
	if err := m.echo(); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
