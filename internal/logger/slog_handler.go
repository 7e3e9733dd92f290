package logger

import (
	"context"
	"log/slog"
	"runtime"

	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
)

// SlogHandler is a slog.Handler that writes records through a Logger, so
// code written against log/slog obeys the same threshold and line format.
// Attributes are appended to the message as key=value pairs; the source
// location is taken from the record's PC.
type SlogHandler struct {
	// l is the Logger that gates and writes each record.
	l *Logger
	// attrs holds pre-rendered " key=value" text from WithAttrs.
	attrs string
	// prefix is the dotted group path from WithGroup, e.g. "http.".
	prefix string
}

// NewSlogHandler creates a handler writing through l.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{l: l}
}

// Compile-time check to ensure SlogHandler implements slog.Handler.
var _ slog.Handler = (*SlogHandler)(nil)

// FromSlogLevel maps a slog level onto the prilog scale. Levels above
// slog.LevelError by 4 or more are treated as critical.
func FromSlogLevel(level slog.Level) prilog.Level {
	switch {
	case level < slog.LevelInfo:
		return prilog.LevelDebug
	case level < slog.LevelWarn:
		return prilog.LevelInfo
	case level < slog.LevelError:
		return prilog.LevelWarning
	case level < slog.LevelError+4:
		return prilog.LevelError
	default:
		return prilog.LevelCritical
	}
}

// Enabled forwards the check to the Logger's threshold.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Enabled(FromSlogLevel(level))
}

// Handle renders the record's message and attributes and emits one line.
func (h *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	level := FromSlogLevel(record.Level)
	if !h.l.Enabled(level) {
		return nil
	}

	loc := unknownLocation
	if record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		loc = prilog.Location{File: frame.File, Line: frame.Line}
	}

	msg := record.Message + h.attrs
	record.Attrs(func(a slog.Attr) bool {
		msg = appendAttr(msg, h.prefix, a)
		return true
	})
	// The message is already final text; pass it as an argument so braces
	// inside it are not treated as replacement fields.
	h.l.withTrace(ctx).emit(level, loc, "{}", []any{msg})
	return nil
}

// WithAttrs returns a handler that appends attrs to every record.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	for _, a := range attrs {
		c.attrs = appendAttr(c.attrs, h.prefix, a)
	}
	return &c
}

// WithGroup returns a handler that qualifies subsequent keys with name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

// appendAttr renders one attribute as " key=value", flattening groups.
func appendAttr(dst, prefix string, a slog.Attr) string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, groupPrefix, ga)
		}
		return dst
	}
	return dst + " " + prefix + a.Key + "=" + a.Value.String()
}
