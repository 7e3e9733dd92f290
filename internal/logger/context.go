package logger

import (
	"context"

	// Import OpenTelemetry trace package for context handling
	"go.opentelemetry.io/otel/trace"
)

// withTrace returns a copy of l that appends the trace and span IDs of the
// span in ctx to every formatted message, replacing IDs attached by an
// earlier call. If ctx carries no valid span, l itself is returned.
func (l *Logger) withTrace(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	c := *l
	c.suffix = " trace_id=" + sc.TraceID().String() + " span_id=" + sc.SpanID().String()
	return &c
}
