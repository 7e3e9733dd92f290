// Package log defines the public logging types used across prilog packages:
// the severity scale, its syslog priority mapping and the Logger interface.
package log

import "context"

// Location identifies the source line a record was logged from.
type Location struct {
	File string
	Line int
}

// Logger defines the public interface for level-gated, single-line logging.
// Every record is written as
//
//	<priority>[<file basename>:<line>] <message>
//
// where message is the template rendered with its arguments.
type Logger interface {
	// Critical, Error, Warning, Info and Debug log a brace template at a
	// fixed level, attributing the record to the line that called them.
	Critical(template string, args ...any)
	Error(template string, args ...any)
	Warning(template string, args ...any)
	Info(template string, args ...any)
	Debug(template string, args ...any)

	// Dispatch logs at level with an explicitly supplied location. The line
	// is written as given, so a Line of 0 or less appears verbatim; the
	// wrappers report "???:0" only when the call stack cannot be read.
	Dispatch(level Level, loc Location, template string, args ...any)
	// LogDepth logs at level, attributing the record to the caller depth
	// frames above the caller of LogDepth. Helpers wrapping a Logger use it
	// so records point at their own callers.
	LogDepth(depth int, level Level, template string, args ...any)

	// WithContext returns a Logger whose records carry the trace and span
	// IDs found in ctx, if any.
	WithContext(ctx context.Context) Logger

	// Enabled reports whether a call at level would currently be emitted.
	Enabled(level Level) bool
	// Level returns the current threshold.
	Level() Level
}
