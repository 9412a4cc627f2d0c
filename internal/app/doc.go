// Package app is the composition root for the logterm command.
//
// Run loads the config file and saved preferences, builds a
// logterm.Terminal, and starts the sources that feed it:
//
//   - Files: each file becomes a channel named after its base name. The
//     newest lines are seeded into scrollback, then the file is followed.
//   - Demo: synthetic records from several components at mixed levels.
//
// The viewer's own diagnostics are written with pslog into the "logterm"
// channel, and mirrored to a file when log_output is set. A background
// poller watches ingest stats and reports filtered records and a growing
// backlog.
//
// Fatal errors (returned from Run):
//   - invalid configuration
//   - an unknown --level
//   - a log_output path that cannot be opened
//
// Anything that goes wrong once the viewer is up (a file that vanishes, a
// bad preferences file) is logged to the "logterm" channel instead.
package app
