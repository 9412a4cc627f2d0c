package ui

// Scroll magnitudes.
const (
	// DefaultPageSize is the page-up/page-down step in lines.
	DefaultPageSize = 10

	// mouseWheelStep is the scroll step for one wheel notch.
	mouseWheelStep = 3
)

// Frame geometry.
const (
	// paneChrome is the width taken by the two side borders and the
	// scrollbar column.
	paneChrome = 3

	// tabStripHeight is the row above each content pane.
	tabStripHeight = 1

	// footerHeight is the key hint row at the bottom.
	footerHeight = 1

	// minPaneHeight keeps a pane drawable on tiny terminals: two borders
	// and one content row.
	minPaneHeight = 3

	// maxTabLabel caps a single tab label before truncation.
	maxTabLabel = 24

	helpModalWidth = 44
)
