package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// scrollbarRows produces one scrollbar cell per row of a pane. The thumb
// marks the visible window within total rows and uses the focus color when
// the column is selected.
func scrollbarRows(theme Theme, height, total, visible, offset int, focused bool) []string {
	if height <= 0 {
		return nil
	}

	thumbColor := theme.Border
	if focused {
		thumbColor = theme.BorderFocus
	}
	trackStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))
	thumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(thumbColor))

	rows := make([]string, height)

	// Content fits, so the thumb spans the full height.
	if total <= visible || total <= 0 {
		for i := range rows {
			rows[i] = thumbStyle.Render("┃")
		}
		return rows
	}

	thumbSize := max(height*visible/total, 1)

	scrollable := total - visible
	track := height - thumbSize
	thumbOffset := 0
	if scrollable > 0 && track > 0 {
		thumbOffset = offset * track / scrollable
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for i := range rows {
		if i >= thumbOffset && i < thumbOffset+thumbSize {
			rows[i] = thumbStyle.Render("┃")
		} else {
			rows[i] = trackStyle.Render("│")
		}
	}
	return rows
}
