// Package layout arranges channel buffers into columns of stacked tabs and
// tracks the selection cursor. Column ids and stack positions stay dense:
// every removal compacts indices before the operation returns.
package layout

import (
	"github.com/five82/logterm/internal/channel"
	"github.com/five82/logterm/internal/index"
)

// Direction is a horizontal movement.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Cursor addresses the selected stack entry. It always points at the open
// entry of its column.
type Cursor struct {
	Column index.ColumnID
	Pos    index.StackPos
}

// Less orders cursors column first, then position.
func (c Cursor) Less(o Cursor) bool {
	if c.Column != o.Column {
		return c.Column < o.Column
	}
	return c.Pos < o.Pos
}

type column struct {
	stack index.Vec[index.StackPos, index.ChannelID]
	open  index.StackPos
}

// Layout owns every channel buffer and their placement.
type Layout struct {
	maxLines int

	buffers index.Vec[index.ChannelID, *channel.Buffer]
	names   map[string]index.ChannelID

	columns index.Vec[index.ColumnID, *column]
	cursor  Cursor
}

// New returns an empty layout whose buffers hold at most maxLines lines.
func New(maxLines int) *Layout {
	if maxLines < 1 {
		maxLines = channel.DefaultMaxLines
	}
	return &Layout{
		maxLines: maxLines,
		names:    make(map[string]index.ChannelID),
	}
}

// MaxLines returns the per-channel capacity.
func (l *Layout) MaxLines() int { return l.maxLines }

// Cursor returns the current selection.
func (l *Layout) Cursor() Cursor { return l.cursor }

// Channels returns the number of channels ever created.
func (l *Layout) Channels() int { return int(l.buffers.Len()) }

// Columns returns the number of columns.
func (l *Layout) Columns() int { return int(l.columns.Len()) }

// Channel looks up a buffer by name.
func (l *Layout) Channel(name string) (*channel.Buffer, bool) {
	id, ok := l.names[name]
	if !ok {
		return nil, false
	}
	return l.buffers.At(id), true
}

// Buffer returns the buffer for id.
func (l *Layout) Buffer(id index.ChannelID) *channel.Buffer {
	return l.buffers.At(id)
}

// Selected returns the buffer under the cursor, or nil before the first
// channel exists.
func (l *Layout) Selected() *channel.Buffer {
	if l.columns.Empty() {
		return nil
	}
	col := l.columns.At(l.cursor.Column)
	return l.buffers.At(col.stack.At(l.cursor.Pos))
}

// AddChannel appends text to the channel called name, creating the channel
// first when the name is new. New channels are stacked at the end of column
// 0; only the very first channel becomes the selected entry, which it does
// because the cursor starts at (0, 0).
func (l *Layout) AddChannel(name, text string) (index.ChannelID, bool) {
	if id, ok := l.names[name]; ok {
		l.buffers.At(id).Append(text)
		return id, false
	}

	id := l.buffers.Len()
	buf := channel.NewBuffer(id, name, l.maxLines)
	buf.Append(text)
	l.buffers.Push(buf)
	l.names[name] = id

	if l.columns.Empty() {
		l.columns.Push(&column{})
	}
	l.columns.At(0).stack.Push(id)

	l.mustCheck()
	return id, true
}

// Scroll scrolls the selected channel.
func (l *Layout) Scroll(delta int) bool {
	buf := l.Selected()
	if buf == nil {
		return false
	}
	return buf.Scroll(delta)
}

// MoveSelection moves the cursor to the adjacent stack entry in
// (column, position) order, crossing column boundaries. The target entry
// becomes the open entry of its column; the column being left keeps its open
// entry when the move crosses columns.
func (l *Layout) MoveSelection(dir Direction) bool {
	if l.columns.Empty() {
		return false
	}
	target := l.cursor
	col := l.columns.At(target.Column)

	switch dir {
	case Left:
		switch {
		case target.Pos > 0:
			target.Pos = target.Pos.Prev()
		case target.Column > 0:
			target.Column = target.Column.Prev()
			target.Pos = l.columns.At(target.Column).stack.Last()
		default:
			return false
		}
	case Right:
		switch {
		case target.Pos < col.stack.Last():
			target.Pos = target.Pos.Next()
		case target.Column < l.columns.Last():
			target.Column = target.Column.Next()
			target.Pos = 0
		default:
			return false
		}
	}

	l.columns.At(target.Column).open = target.Pos
	l.cursor = target
	l.mustCheck()
	return true
}

// MoveChannel relocates the selected channel to the neighbouring column,
// creating that column when none exists in the direction of travel. A column
// left empty is removed. Moving the only entry of an outermost column
// outward changes nothing.
func (l *Layout) MoveChannel(dir Direction) bool {
	if l.columns.Empty() {
		return false
	}
	src := l.cursor.Column
	col := l.columns.At(src)
	alone := col.stack.Len() == 1

	switch {
	case dir == Left && src == 0 && alone:
		return false
	case dir == Right && src == l.columns.Last() && alone:
		return false
	}

	pos := l.cursor.Pos
	id := col.stack.Remove(pos)
	if !col.stack.Empty() && pos > col.stack.Last() {
		pos = col.stack.Last()
	}
	col.open = pos

	var dst index.ColumnID
	switch dir {
	case Left:
		if src == 0 {
			l.insertColumn(0)
			src = src.Next()
		} else {
			dst = src.Prev()
		}
	case Right:
		dst = src.Next()
		if src == l.columns.Last() {
			l.insertColumn(dst)
		}
	}

	target := l.columns.At(dst)
	target.open = target.stack.Push(id)
	l.cursor = Cursor{Column: dst, Pos: target.open}

	if col.stack.Empty() {
		l.removeColumn(src)
	}

	l.mustCheck()
	return true
}

// SwitchTab moves the cursor to the neighbouring column, landing on that
// column's open entry. Open entries and stacking order are unchanged.
func (l *Layout) SwitchTab(dir Direction) bool {
	if l.columns.Empty() {
		return false
	}
	dst := l.cursor.Column
	switch {
	case dir == Left && dst > 0:
		dst = dst.Prev()
	case dir == Right && dst < l.columns.Last():
		dst = dst.Next()
	default:
		return false
	}

	l.cursor = Cursor{Column: dst, Pos: l.columns.At(dst).open}
	l.mustCheck()
	return true
}

func (l *Layout) insertColumn(at index.ColumnID) {
	l.columns.Insert(at, &column{})
	l.shiftColumns(at, 1)
}

func (l *Layout) removeColumn(at index.ColumnID) {
	l.columns.Remove(at)
	l.shiftColumns(at, -1)
}

// shiftColumns renumbers every column-keyed reference after columns at or
// beyond at moved by delta. It is the single compaction routine shared by
// insertion and removal.
func (l *Layout) shiftColumns(at index.ColumnID, delta int) {
	switch {
	case delta > 0 && l.cursor.Column >= at:
		l.cursor.Column += index.ColumnID(delta)
	case delta < 0 && l.cursor.Column > at:
		l.cursor.Column += index.ColumnID(delta)
	}
}
