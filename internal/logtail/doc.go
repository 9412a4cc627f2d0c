// Package logtail turns log files into channel input.
//
// Read returns the last N lines of a file using one sequential pass and a
// ring buffer of N entries, so memory stays O(N) regardless of file size.
// Seed feeds those lines to a sink so a channel starts with recent history.
// Follow then streams lines appended afterwards, reopening the file by name
// when it is rotated.
//
// Each file becomes one channel named after its base name.
//
// Read returns nil, nil for a file that does not exist. Other errors are
// wrapped. Follow returns the context error when cancelled; read errors on
// individual lines are logged and skipped.
package logtail
