// Package ui is the Bubble Tea front end of the viewer.
//
// The Model is the only owner of the layout and every channel buffer.
// Records and input both arrive as messages on the program's event loop
// and are applied one at a time, so nothing inside the model is locked.
//
// # Messages
//
//   - ingest.Trace: a routed record, or a dropped one when Routed is false
//   - ingest.Raw: bytes whose routing decision waits in an ingest.Names FIFO
//   - ScrollMsg, MoveSelectionMsg, MoveChannelMsg, SwitchTabMsg: layout input
//   - ResizeMsg and tea.WindowSizeMsg: terminal size changes
//
// Text that is not valid UTF-8 is dropped and counted. A Raw message with no
// queued decision panics with ingest.ErrOrdering, and so does a layout
// invariant failure, because every later frame would be wrong.
//
// # Frame
//
// Columns split the width equally, the last one taking the remainder. Each
// column is a tab strip over a bordered pane showing its open channel with
// a scrollbar. Lines are rewrapped lazily when a pane's width changes, and
// a pane that is off the live tail shows "Scrolling: N" in its border.
//
// # Key Bindings
//
//   - k/j, pgup/pgdown, g/G: scroll by one, a page, or to an extreme
//   - h/l: move the cursor between channels
//   - H/L: move the selected channel to the next column
//   - tab/shift+tab: jump to the neighbouring column
//   - y: copy the selected line over OSC 52
//   - T: cycle theme, ?: help, q or ctrl+c: quit
package ui
