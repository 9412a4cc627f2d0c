package ui

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logterm/internal/ingest"
	"github.com/five82/logterm/internal/layout"
	"github.com/five82/logterm/internal/prefs"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Clipboard == nil {
		opts.Clipboard = &bytes.Buffer{}
	}
	if opts.Size == nil {
		opts.Size = func() (int, int, error) { return 100, 30, nil }
	}
	return send(New(opts), tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func trace(name, text string) ingest.Trace {
	return ingest.Trace{Name: name, Routed: true, Text: []byte(text)}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TracesCreateChannels(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("A", "one"), trace("B", "two"), trace("A", "three"))

	l := m.Layout()
	if l.Channels() != 2 || l.Columns() != 1 {
		t.Fatalf("channels=%d columns=%d, want 2 and 1", l.Channels(), l.Columns())
	}
	a, _ := l.Channel("A")
	if got := a.Lines(); len(got) != 2 || got[0] != "one" || got[1] != "three" {
		t.Fatalf("A lines = %v, want [one three]", got)
	}
	if sel := l.Selected(); sel.Name() != "A" {
		t.Fatalf("selected = %q, want A", sel.Name())
	}
}

func TestModel_DropsUnroutedAndInvalidText(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m,
		ingest.Trace{Name: "ignored", Text: []byte("x")},
		ingest.Trace{Name: "bad", Routed: true, Text: []byte{0xff, 0xfe}},
	)

	if got := m.Layout().Channels(); got != 0 {
		t.Fatalf("Channels = %d, want 0", got)
	}
	if got := m.DecodeFailures(); got != 1 {
		t.Fatalf("DecodeFailures = %d, want 1", got)
	}
}

func TestModel_RawPairsWithQueuedName(t *testing.T) {
	names := &ingest.Names{}
	m := newTestModel(t, Options{Names: names})

	names.Decide("net", true)
	names.Decide("", false)
	m = send(m, ingest.Raw{Text: []byte("hello")}, ingest.Raw{Text: []byte("dropped")})

	buf, ok := m.Layout().Channel("net")
	if !ok || buf.Len() != 1 {
		t.Fatalf("net channel = %v, %v, want one line", buf, ok)
	}
	if m.Layout().Channels() != 1 {
		t.Fatalf("Channels = %d, want 1", m.Layout().Channels())
	}
}

func TestModel_RawWithoutNameIsFatal(t *testing.T) {
	m := newTestModel(t, Options{Names: &ingest.Names{}})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ingest.ErrOrdering) {
			t.Fatalf("recover() = %v, want ErrOrdering", r)
		}
	}()
	send(m, ingest.Raw{Text: []byte("orphan")})
}

func TestModel_KeysDriveLayout(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("A", "a"), trace("B", "b"))

	m = send(m, runes("l"))
	if got := m.Layout().Selected().Name(); got != "B" {
		t.Fatalf("after l selected = %q, want B", got)
	}

	m = send(m, runes("L"))
	if got := m.Layout().Columns(); got != 2 {
		t.Fatalf("after L columns = %d, want 2", got)
	}
	if c := m.Layout().Cursor(); c.Column != 1 {
		t.Fatalf("after L cursor = %+v, want column 1", c)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.Layout().Selected().Name(); got != "A" {
		t.Fatalf("after shift+tab selected = %q, want A", got)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Layout().Selected().Name(); got != "B" {
		t.Fatalf("after tab selected = %q, want B", got)
	}
}

func TestModel_ScrollKeys(t *testing.T) {
	m := newTestModel(t, Options{PageSize: 2})
	for _, text := range []string{"1", "2", "3", "4", "5"} {
		m = send(m, trace("A", text))
	}
	buf := m.Layout().Selected()

	tests := []struct {
		key       tea.Msg
		following bool
		offset    int
	}{
		{runes("k"), false, 4},
		{tea.KeyMsg{Type: tea.KeyPgUp}, false, 2},
		{runes("j"), false, 3},
		{runes("g"), false, 0},
		{runes("G"), true, 5},
		{tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, false, 2},
		{tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, true, 5},
	}
	for i, tt := range tests {
		m = send(m, tt.key)
		if buf.Following() != tt.following || buf.VisibleOffset() != tt.offset {
			t.Fatalf("step %d: following=%v offset=%d, want %v %d",
				i, buf.Following(), buf.VisibleOffset(), tt.following, tt.offset)
		}
	}
}

func TestModel_DirectMessages(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("A", "a"), trace("B", "b"))

	m = send(m, MoveSelectionMsg{Dir: layout.Right}, MoveChannelMsg{Dir: layout.Left})
	if got := m.Layout().Columns(); got != 2 {
		t.Fatalf("columns = %d, want 2", got)
	}
	if p, _ := m.Layout().Placement("B"); p.Column != 0 {
		t.Fatalf("B placement = %+v, want column 0", p)
	}
	if err := m.Layout().Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
}

func TestModel_ResizeQueriesTerminal(t *testing.T) {
	m := newTestModel(t, Options{Size: func() (int, int, error) { return 120, 40, nil }})
	m = send(m, ResizeMsg{})
	if m.width != 120 || m.height != 40 {
		t.Fatalf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path})

	m = send(m, runes("T"))
	if got := m.ThemeName(); got != "Kanagawa" {
		t.Fatalf("ThemeName = %q, want Kanagawa", got)
	}
	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = send(m, runes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q cmd did not quit")
	}
}

func TestModel_CopySetsStatus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("A", "payload"))

	next, cmd := m.Update(runes("y"))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("copy returned nil cmd")
	}
	if !strings.Contains(m.status, "A") {
		t.Fatalf("status = %q, want channel name", m.status)
	}
	m = send(m, statusClearMsg{})
	if m.status != "" {
		t.Fatalf("status = %q after clear", m.status)
	}
}

func TestCopyCmd_WritesOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var out bytes.Buffer
	copyCmd(&out, "hello")()
	// base64("hello")
	if !strings.Contains(out.String(), "aGVsbG8=") {
		t.Fatalf("osc52 output = %q, want encoded payload", out.String())
	}
	if !strings.HasPrefix(out.String(), "\x1b]52;") {
		t.Fatalf("osc52 output = %q, want OSC 52 prefix", out.String())
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
}
