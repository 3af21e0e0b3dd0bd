// Package logtail reads the last lines of the shelf client log.
//
// The client writes its log to a file because the terminal belongs to the
// TUI. Tail reads that file backwards in fixed-size blocks, so asking for the
// last few lines of a large log costs only the blocks that hold them.
//
//	lines, err := logtail.Tail(cfg.LogFile, 50)
//
// A missing file is not an error; it yields no lines.
package logtail
