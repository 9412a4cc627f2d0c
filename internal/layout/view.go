package layout

import (
	"github.com/five82/logterm/internal/channel"
	"github.com/five82/logterm/internal/index"
)

// Tab is one entry of a column's tab strip.
type Tab struct {
	Channel  index.ChannelID
	Name     string
	Open     bool
	Selected bool
}

// ColumnView is what the render pass needs for one column.
type ColumnView struct {
	Column   index.ColumnID
	Tabs     []Tab
	Open     *channel.Buffer
	Selected bool
}

// View snapshots the arrangement left to right.
func (l *Layout) View() []ColumnView {
	views := make([]ColumnView, 0, l.Columns())
	for c, col := range l.columns.All() {
		selected := c == l.cursor.Column
		view := ColumnView{
			Column:   c,
			Tabs:     make([]Tab, 0, int(col.stack.Len())),
			Open:     l.buffers.At(col.stack.At(col.open)),
			Selected: selected,
		}
		for p, id := range col.stack.All() {
			view.Tabs = append(view.Tabs, Tab{
				Channel:  id,
				Name:     l.buffers.At(id).Name(),
				Open:     p == col.open,
				Selected: selected && p == l.cursor.Pos,
			})
		}
		views = append(views, view)
	}
	return views
}

// Placement returns where the channel called name currently sits.
func (l *Layout) Placement(name string) (Cursor, bool) {
	id, ok := l.names[name]
	if !ok {
		return Cursor{}, false
	}
	for c, col := range l.columns.All() {
		if p, found := col.stack.Find(func(v index.ChannelID) bool { return v == id }); found {
			return Cursor{Column: c, Pos: p}, true
		}
	}
	return Cursor{}, false
}
