package channel

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Wrapped is the flat list of display rows for a buffer at one width.
// Rows[Start:End] belong to the selected line; Start == End == len(Rows)
// while the view follows the live tail.
type Wrapped struct {
	Rows  []string
	Start int
	End   int
}

// Scrolling returns how many rows separate the selected row from the end of
// the list. Zero means the view is on the live tail.
func (w Wrapped) Scrolling() int {
	return len(w.Rows) - w.Start
}

// Wrap returns the display rows for width, recomputing a line's fragments
// only when its cache was filled at a different width.
func (b *Buffer) Wrap(width int) Wrapped {
	if width < 1 {
		width = 1
	}
	stale := b.width != width
	selected := b.VisibleOffset()

	var out Wrapped
	for i := 0; i < b.Len(); i++ {
		line := b.Line(i)
		if stale || line.width != width || line.wrapped == nil {
			line.wrapped = wrapLine(line.raw, width)
			line.width = width
			b.rewraps++
		}
		if i == selected {
			out.Start = len(out.Rows)
		}
		out.Rows = append(out.Rows, line.wrapped...)
		if i == selected {
			out.End = len(out.Rows)
		}
	}
	if selected >= b.Len() {
		out.Start = len(out.Rows)
		out.End = len(out.Rows)
	}
	b.width = width
	return out
}

// Width returns the width the buffer was last wrapped at.
func (b *Buffer) Width() int { return b.width }

// Rewraps counts line wrap computations over the buffer's lifetime.
func (b *Buffer) Rewraps() int { return b.rewraps }

// wrapLine splits raw into fragments no wider than width. Fragments with no
// visible text are dropped. The result is never nil so an empty line still
// counts as cached.
func wrapLine(raw string, width int) []string {
	fragments := []string{}
	for _, part := range strings.Split(ansi.Wrap(raw, width, ""), "\n") {
		if strings.TrimSpace(ansi.Strip(part)) == "" {
			continue
		}
		fragments = append(fragments, part)
	}
	return fragments
}
