package ui

import (
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/five82/logterm/internal/channel"
	"github.com/five82/logterm/internal/ingest"
	"github.com/five82/logterm/internal/layout"
	"github.com/five82/logterm/internal/prefs"
)

// statusTTL is how long a footer notice stays before the key hints return.
const statusTTL = 2 * time.Second

// Options configures the UI.
type Options struct {
	MaxLines  int
	PageSize  int
	ThemeName string
	// PrefsPath is where a cycled theme is saved. Empty disables saving.
	PrefsPath string
	// Names pairs ingest.Raw messages with routing decisions queued by
	// two-step producers. Nil means Raw messages are an ordering violation.
	Names *ingest.Names
	// Clipboard receives OSC 52 sequences. Defaults to os.Stdout.
	Clipboard io.Writer
	// Size reports the terminal size on ResizeMsg. Defaults to stdout.
	Size func() (width, height int, err error)
}

// Input messages. Key bindings translate to these and embedders may send
// them directly through the program.
type (
	// ScrollMsg scrolls the selected channel. Positive is toward older
	// lines; channel.ScrollAll jumps to an extreme.
	ScrollMsg struct{ Delta int }
	// MoveSelectionMsg moves the cursor to the adjacent channel.
	MoveSelectionMsg struct{ Dir layout.Direction }
	// MoveChannelMsg moves the selected channel to the adjacent column.
	MoveChannelMsg struct{ Dir layout.Direction }
	// SwitchTabMsg moves the cursor to the adjacent column's open channel.
	SwitchTabMsg struct{ Dir layout.Direction }
	// ResizeMsg asks the model to re-query the terminal size.
	ResizeMsg struct{}
)

type statusClearMsg struct{}

// Model is the single owner of the layout and every channel buffer.
type Model struct {
	layout *layout.Layout
	names  *ingest.Names

	keys      keyMap
	help      help.Model
	theme     Theme
	prefsPath string
	pageSize  int
	clipboard io.Writer
	size      func() (int, int, error)

	width    int
	height   int
	ready    bool
	showHelp bool
	status   string

	decodeFailures int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = channel.DefaultMaxLines
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = os.Stdout
	}

	size := opts.Size
	if size == nil {
		size = func() (int, int, error) { return term.GetSize(os.Stdout.Fd()) }
	}

	return Model{
		layout:    layout.New(maxLines),
		names:     opts.Names,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		prefsPath: opts.PrefsPath,
		pageSize:  pageSize,
		clipboard: clipboard,
		size:      size,
	}
}

// Layout exposes the arrangement for inspection.
func (m Model) Layout() *layout.Layout { return m.layout }

// ThemeName returns the active theme.
func (m Model) ThemeName() string { return m.theme.Name }

// DecodeFailures counts records dropped because their text was not UTF-8.
func (m Model) DecodeFailures() int { return m.decodeFailures }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ingest.Trace:
		m.appendTrace(msg)
		return m, nil

	case ingest.Raw:
		if m.names == nil {
			panic(ingest.ErrOrdering)
		}
		trace, err := m.names.Pair(msg)
		if err != nil {
			panic(err)
		}
		m.appendTrace(trace)
		return m, nil

	case ScrollMsg:
		m.layout.Scroll(msg.Delta)
		return m, nil

	case MoveSelectionMsg:
		m.layout.MoveSelection(msg.Dir)
		return m, nil

	case MoveChannelMsg:
		m.layout.MoveChannel(msg.Dir)
		return m, nil

	case SwitchTabMsg:
		m.layout.SwitchTab(msg.Dir)
		return m, nil

	case ResizeMsg:
		if width, height, err := m.size(); err == nil {
			m.setSize(width, height)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.layout.Scroll(mouseWheelStep)
		case tea.MouseButtonWheelDown:
			m.layout.Scroll(-mouseWheelStep)
		}
		return m, nil

	case statusClearMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

// appendTrace feeds one routed record into the layout. Dropped records and
// text that is not valid UTF-8 leave the model untouched.
func (m *Model) appendTrace(t ingest.Trace) {
	if !t.Routed {
		return
	}
	if !utf8.Valid(t.Text) {
		m.decodeFailures++
		return
	}
	m.layout.AddChannel(t.Name, string(t.Text))
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.ready = true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey translates key presses into layout operations.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}

	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.Up):
		return m.Update(ScrollMsg{Delta: 1})
	case key.Matches(msg, m.keys.Down):
		return m.Update(ScrollMsg{Delta: -1})
	case key.Matches(msg, m.keys.PageUp):
		return m.Update(ScrollMsg{Delta: m.pageSize})
	case key.Matches(msg, m.keys.PageDown):
		return m.Update(ScrollMsg{Delta: -m.pageSize})
	case key.Matches(msg, m.keys.Top):
		return m.Update(ScrollMsg{Delta: channel.ScrollAll})
	case key.Matches(msg, m.keys.Bottom):
		return m.Update(ScrollMsg{Delta: -channel.ScrollAll})

	case key.Matches(msg, m.keys.SelectLeft):
		return m.Update(MoveSelectionMsg{Dir: layout.Left})
	case key.Matches(msg, m.keys.SelectRight):
		return m.Update(MoveSelectionMsg{Dir: layout.Right})
	case key.Matches(msg, m.keys.MoveLeft):
		return m.Update(MoveChannelMsg{Dir: layout.Left})
	case key.Matches(msg, m.keys.MoveRight):
		return m.Update(MoveChannelMsg{Dir: layout.Right})
	case key.Matches(msg, m.keys.TabLeft):
		return m.Update(SwitchTabMsg{Dir: layout.Left})
	case key.Matches(msg, m.keys.TabRight):
		return m.Update(SwitchTabMsg{Dir: layout.Right})
	}

	return m, nil
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	buf := m.layout.Selected()
	if buf == nil {
		return m, nil
	}
	line, ok := buf.SelectedLine()
	if !ok {
		return m, nil
	}
	m.status = "Copied line from " + buf.Name()
	return m, tea.Batch(
		copyCmd(m.clipboard, line),
		tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusClearMsg{} }),
	)
}
