// Package channel holds the per-channel scrollback: a bounded FIFO of raw
// lines, a lazily filled wrap cache per line, and the scroll offset state
// machine.
package channel

import (
	"strings"

	"github.com/five82/logterm/internal/index"
)

// DefaultMaxLines is the scrollback capacity used when none is configured.
const DefaultMaxLines = 2000

// Line is one received record. Raw text never changes; the wrap cache is
// valid only for the width it was computed at.
type Line struct {
	raw     string
	wrapped []string
	width   int
}

// Text returns the raw text of the line.
func (l *Line) Text() string { return l.raw }

// Buffer is the scrollback for one named channel.
type Buffer struct {
	id       index.ChannelID
	name     string
	maxLines int

	// Ring storage: grows until maxLines, then head marks the oldest line.
	lines []Line
	head  int

	scroll ScrollOffset

	width   int
	rewraps int
}

// NewBuffer creates an empty buffer. maxLines below one falls back to
// DefaultMaxLines.
func NewBuffer(id index.ChannelID, name string, maxLines int) *Buffer {
	if maxLines < 1 {
		maxLines = DefaultMaxLines
	}
	return &Buffer{id: id, name: name, maxLines: maxLines}
}

// ID returns the channel handle.
func (b *Buffer) ID() index.ChannelID { return b.id }

// Name returns the display name, which is also the routing key.
func (b *Buffer) Name() string { return b.name }

// MaxLines returns the capacity.
func (b *Buffer) MaxLines() int { return b.maxLines }

// Len returns the number of lines held.
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns the line at i, oldest first.
func (b *Buffer) Line(i int) *Line {
	return &b.lines[(b.head+i)%len(b.lines)]
}

// Lines returns the raw text of every line, oldest first.
func (b *Buffer) Lines() []string {
	out := make([]string, b.Len())
	for i := range out {
		out[i] = b.Line(i).raw
	}
	return out
}

// Append adds a line, evicting the oldest when the buffer is full. A pinned
// scroll offset moves with its line when the oldest line is evicted.
func (b *Buffer) Append(text string) {
	line := Line{raw: normalize(text)}
	if len(b.lines) < b.maxLines {
		b.lines = append(b.lines, line)
		return
	}
	b.lines[b.head] = line
	b.head = (b.head + 1) % len(b.lines)
	if b.scroll.Enabled && b.scroll.Offset > 0 {
		b.scroll.Offset--
	}
}

// Scroll moves the view: positive delta toward older lines, negative toward
// newer lines. It reports whether the offset changed.
func (b *Buffer) Scroll(delta int) bool {
	switch {
	case delta > 0:
		return b.scroll.Up(delta, b.Len())
	case delta < 0:
		if delta < -ScrollAll {
			delta = -ScrollAll
		}
		return b.scroll.Down(-delta, b.Len())
	}
	return false
}

// ScrollState returns a copy of the scroll offset.
func (b *Buffer) ScrollState() ScrollOffset { return b.scroll }

// Following reports whether the view tracks the live tail.
func (b *Buffer) Following() bool { return !b.scroll.Enabled }

// VisibleOffset returns the line index to select, which is Len when the view
// follows the tail.
func (b *Buffer) VisibleOffset() int {
	return b.scroll.Value(b.Len())
}

// SelectedLine returns the raw text under the cursor: the pinned line, or
// the newest line when following.
func (b *Buffer) SelectedLine() (string, bool) {
	if b.Len() == 0 {
		return "", false
	}
	i := b.VisibleOffset()
	if i >= b.Len() {
		i = b.Len() - 1
	}
	return b.Line(i).raw, true
}

func normalize(text string) string {
	text = strings.TrimRight(text, "\r\n")
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\t", "    ")
}
