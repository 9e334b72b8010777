// Package logtail reads the end of the desk log for the `dropoff log` command.
//
// Read keeps a ring buffer of the last N matching lines, so memory stays
// bounded by the requested line count rather than the file size. Lines can be
// narrowed by minimum slog level and by substring, which is how a clerk pulls
// up every event for one ticket ID.
package logtail
