package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/logterm/internal/channel"
)

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name  string
		width int
		n     int
		want  []int
	}{
		{"even", 90, 3, []int{30, 30, 30}},
		{"remainder to last", 80, 3, []int{26, 26, 28}},
		{"single", 80, 1, []int{80}},
		{"none", 80, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := columnWidths(tt.width, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("columnWidths = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("columnWidths = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFirstVisibleRow(t *testing.T) {
	rows := make([]string, 20)
	tests := []struct {
		name   string
		w      channel.Wrapped
		height int
		want   int
	}{
		{"fits", channel.Wrapped{Rows: rows[:5], Start: 5, End: 5}, 10, 0},
		{"following", channel.Wrapped{Rows: rows, Start: 20, End: 20}, 8, 12},
		{"selected near top", channel.Wrapped{Rows: rows, Start: 2, End: 3}, 8, 0},
		{"selected in middle", channel.Wrapped{Rows: rows, Start: 10, End: 12}, 8, 4},
		{"selected taller than pane", channel.Wrapped{Rows: rows, Start: 3, End: 15}, 8, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstVisibleRow(tt.w, tt.height); got != tt.want {
				t.Fatalf("firstVisibleRow = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScrollbarRows(t *testing.T) {
	theme := GetTheme("Slate")
	if got := scrollbarRows(theme, 0, 10, 5, 0, true); got != nil {
		t.Fatalf("zero height = %v, want nil", got)
	}

	full := scrollbarRows(theme, 4, 3, 4, 0, false)
	for i, cell := range full {
		if ansi.Strip(cell) != "┃" {
			t.Fatalf("row %d = %q, want full thumb", i, cell)
		}
	}

	bottom := scrollbarRows(theme, 4, 8, 4, 4, true)
	if ansi.Strip(bottom[0]) != "│" || ansi.Strip(bottom[3]) != "┃" {
		t.Fatalf("scrolled to end = %q, want thumb at bottom", bottom)
	}
}

func TestView_FrameShowsTabsAndScrolling(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("alpha", "one"), trace("beta", "x"), trace("alpha", "two"), trace("alpha", "three"))

	view := ansi.Strip(m.View())
	for _, want := range []string{"alpha", "beta", "three", "╭", "╰"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Scrolling:") {
		t.Fatalf("following view shows scroll indicator:\n%s", view)
	}

	m = send(m, ScrollMsg{Delta: 1})
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "Scrolling: 1") {
		t.Fatalf("view missing Scrolling: 1:\n%s", view)
	}
}

func TestView_FitsTerminal(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("a", strings.Repeat("word ", 60)), trace("b", "short"))
	m = send(m, MoveSelectionMsg{Dir: 1}, MoveChannelMsg{Dir: 1})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Fatalf("view has %d lines, want 24", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Fatalf("line %d width = %d, want 80: %q", i, w, ansi.Strip(line))
		}
	}
}

func TestView_RewrapsOnlyOnWidthChange(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, trace("a", "one"), trace("a", "two"))
	buf := m.Layout().Selected()

	_ = m.View()
	first := buf.Rewraps()
	_ = m.View()
	if buf.Rewraps() != first {
		t.Fatalf("Rewraps = %d after identical render, want %d", buf.Rewraps(), first)
	}

	m = send(m, ResizeMsg{})
	_ = m.View()
	if buf.Rewraps() != first+2 {
		t.Fatalf("Rewraps = %d after resize, want %d", buf.Rewraps(), first+2)
	}
}

func TestView_EmptyLayout(t *testing.T) {
	m := newTestModel(t, Options{})
	if !strings.Contains(m.View(), "Waiting for log records") {
		t.Fatalf("empty view missing placeholder")
	}
}
