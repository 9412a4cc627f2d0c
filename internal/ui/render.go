package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/logterm/internal/channel"
	"github.com/five82/logterm/internal/layout"
)

// renderMain renders the columns and the footer.
func (m Model) renderMain() string {
	bodyHeight := max(m.height-footerHeight, tabStripHeight+minPaneHeight)
	views := m.layout.View()

	var body string
	if len(views) == 0 {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.theme.Styles().MutedText.Render("Waiting for log records..."))
	} else {
		widths := columnWidths(m.width, len(views))
		cols := make([]string, len(views))
		for i, view := range views {
			cols[i] = m.renderColumn(view, widths[i], bodyHeight)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	return body + "\n" + m.renderFooter()
}

// columnWidths splits width into n equal columns. The last column takes
// the remainder so the frame fills the terminal.
func columnWidths(width, n int) []int {
	if n <= 0 {
		return nil
	}
	each := width / n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = each
	}
	widths[n-1] += width - each*n
	return widths
}

func (m Model) renderColumn(view layout.ColumnView, width, height int) string {
	return m.renderTabStrip(view, width) + "\n" + m.renderPane(view, width, height-tabStripHeight)
}

// renderTabStrip lists the column's stacked channels. The cursor tab wins
// over the open tab when both apply.
func (m Model) renderTabStrip(view layout.ColumnView, width int) string {
	styles := m.theme.Styles()
	labels := make([]string, 0, len(view.Tabs))
	for _, tab := range view.Tabs {
		style := styles.TabIdle
		switch {
		case tab.Selected:
			style = styles.TabSelected
		case tab.Open:
			style = styles.TabOpen
		}
		labels = append(labels, style.Render(truncate.StringWithTail(tab.Name, maxTabLabel, "…")))
	}

	bg := NewBgStyle(m.theme.Surface)
	strip := ansi.Truncate(bg.Join(labels, "│"), width, "…")
	return bg.FillLine(strip, width)
}

// renderPane draws the open channel inside a rounded border with the
// scrollbar in the rightmost inner column.
func (m Model) renderPane(view layout.ColumnView, width, height int) string {
	styles := m.theme.Styles()
	width = max(width, paneChrome+1)
	height = max(height, minPaneHeight)
	inner := width - paneChrome
	rows := height - 2

	wrapped := view.Open.Wrap(inner)
	top := firstVisibleRow(wrapped, rows)
	bar := scrollbarRows(m.theme, rows, len(wrapped.Rows), rows, top, view.Selected)

	border := styles.Border
	if view.Selected {
		border = styles.BorderFocus
	}

	var b strings.Builder
	b.WriteString(m.topBorder(border, scrollTitle(wrapped), width))
	for i := range rows {
		idx := top + i
		cell := ""
		if idx < len(wrapped.Rows) {
			cell = wrapped.Rows[idx]
		}
		cell += strings.Repeat(" ", max(inner-ansi.StringWidth(cell), 0))
		if idx >= wrapped.Start && idx < wrapped.End {
			cell = styles.SelectedRow.Render(cell)
		}
		b.WriteString("\n")
		b.WriteString(border.Render("│"))
		b.WriteString(cell)
		b.WriteString(bar[i])
		b.WriteString(border.Render("│"))
	}
	b.WriteString("\n")
	b.WriteString(border.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}

// scrollTitle is the pane title shown while the view is off the live tail.
func scrollTitle(w channel.Wrapped) string {
	if n := w.Scrolling(); n > 0 {
		return fmt.Sprintf(" Scrolling: %d ", n)
	}
	return ""
}

func (m Model) topBorder(border lipgloss.Style, title string, width int) string {
	fill := width - 2
	if title == "" || fill < 2 {
		return border.Render("╭" + strings.Repeat("─", fill) + "╮")
	}
	title = ansi.Truncate(title, fill-1, "")
	rest := fill - 1 - ansi.StringWidth(title)
	return border.Render("╭─") +
		m.theme.Styles().WarningText.Render(title) +
		border.Render(strings.Repeat("─", rest)+"╮")
}

// firstVisibleRow picks the window of height rows. Following shows the
// newest rows; otherwise the selected line sits at the bottom edge, or at
// the top when it is taller than the pane.
func firstVisibleRow(w channel.Wrapped, height int) int {
	total := len(w.Rows)
	end := total
	if w.Start < total {
		end = w.End
	}
	top := max(end-height, 0)
	return min(top, w.Start)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	content := m.help.View(m.keys)
	if m.status != "" {
		content = styles.SuccessText.Render(m.status) + "  " + content
	}
	return NewBgStyle(m.theme.Surface).FillLine(ansi.Truncate(content, m.width, ""), m.width)
}
