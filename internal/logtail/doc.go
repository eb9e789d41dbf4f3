// Package logtail reads the tail of the diagnostic log for the Diagnostics
// view.
//
// # Reading
//
// Read returns the last maxLines of a file using a ring buffer, so memory
// stays proportional to maxLines rather than the file size. A non-positive
// maxLines returns every line. A missing file yields nil, nil: the log only
// exists once something has been written to it.
//
// # Formatting
//
// The log is zap's JSON encoding. Parse decodes one line into an Entry and
// Format renders it as "15:04:05 LEVEL message key=value – error", with
// fields sorted by key. Lines that are not JSON are shown as they are.
//
//	lines, err := logtail.Tail(cfg.LogPath, 200)
package logtail
