package layout

import (
	"fmt"

	"github.com/five82/logterm/internal/index"
)

// InvariantError reports a layout whose indices no longer agree with each
// other. There is no recovery: every other operation relies on dense
// columns and a cursor that addresses a live open entry.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "layout invariant violated: " + e.Reason
}

func violation(format string, args ...any) *InvariantError {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// Check verifies that columns are non-empty and dense, that every column's
// open entry exists, that the cursor sits on an open entry, and that every
// channel is placed exactly once.
func (l *Layout) Check() error {
	if l.columns.Empty() {
		if !l.buffers.Empty() {
			return violation("%d channels but no columns", l.buffers.Len())
		}
		if l.cursor != (Cursor{}) {
			return violation("cursor %+v on empty layout", l.cursor)
		}
		return nil
	}

	placed := make(map[index.ChannelID]Cursor, int(l.buffers.Len()))
	for c, col := range l.columns.All() {
		if col.stack.Empty() {
			return violation("column %d is empty", c)
		}
		if !col.stack.Contains(col.open) {
			return violation("column %d open position %d outside stack of %d", c, col.open, col.stack.Len())
		}
		for p, id := range col.stack.All() {
			if !l.buffers.Contains(id) {
				return violation("column %d position %d holds unknown channel %d", c, p, id)
			}
			if prev, dup := placed[id]; dup {
				return violation("channel %d placed twice, at %+v and %+v", id, prev, Cursor{c, p})
			}
			placed[id] = Cursor{c, p}
		}
	}
	if len(placed) != int(l.buffers.Len()) {
		return violation("%d of %d channels placed", len(placed), l.buffers.Len())
	}

	if !l.columns.Contains(l.cursor.Column) {
		return violation("cursor column %d outside %d columns", l.cursor.Column, l.columns.Len())
	}
	if open := l.columns.At(l.cursor.Column).open; open != l.cursor.Pos {
		return violation("cursor %+v is not the open entry %d", l.cursor, open)
	}
	return nil
}

func (l *Layout) mustCheck() {
	if err := l.Check(); err != nil {
		panic(err)
	}
}
