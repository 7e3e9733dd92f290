package logger

import (
	"context"
	"io"
	"os"

	// Import the public logger interface it implements
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
	"github.com/gxo-labs/prilog/pkg/prilog/v1/render"
)

// Observer is notified about emitted lines. It is never called for calls
// gated out by the threshold. Implementations must be safe for concurrent
// use and must not log through the Logger that notifies them.
type Observer interface {
	// LineEmitted is called once per line handed to the writer.
	LineEmitted(level prilog.Level)
	// FormatFailed is called when a message was replaced by the fallback text.
	FormatFailed(level prilog.Level)
	// WriteFailed is called when writing or flushing the line failed.
	WriteFailed(level prilog.Level, err error)
}

type noopObserver struct{}

func (noopObserver) LineEmitted(prilog.Level)        {}
func (noopObserver) FormatFailed(prilog.Level)       {}
func (noopObserver) WriteFailed(prilog.Level, error) {}

// Logger is the level-gated line logger. A Logger is safe for concurrent use
// as long as its writer accepts concurrent Write calls (os.Stdout does).
type Logger struct {
	threshold  *threshold
	out        io.Writer
	renderers  *render.Registry
	observer   Observer
	callerSkip int
	// suffix is appended to formatted messages; set by WithContext.
	suffix string
}

// Option configures a Logger at construction.
type Option func(*Logger)

// WithOutput sets the writer lines are written to (default os.Stdout).
// Each line is passed to a single Write call. If the writer has a
// Flush() error method it is called after every line.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.out = w
		}
	}
}

// WithObserver installs an Observer, for example a metrics collector.
func WithObserver(o Observer) Option {
	return func(l *Logger) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithRenderers replaces the render registry consulted for arguments.
func WithRenderers(reg *render.Registry) Option {
	return func(l *Logger) {
		if reg != nil {
			l.renderers = reg
		}
	}
}

// Compile-time check to ensure Logger implements the public Logger interface.
var _ prilog.Logger = (*Logger)(nil)

// New creates a Logger whose threshold is parsed from levelName.
// Unknown names disable logging (see prilog.ParseLevel).
func New(levelName string, opts ...Option) *Logger {
	return NewWithLevel(prilog.ParseLevel(levelName), opts...)
}

// NewWithLevel creates a Logger with an explicit threshold.
func NewWithLevel(level prilog.Level, opts ...Option) *Logger {
	l := &Logger{
		threshold: newThreshold(level),
		out:       os.Stdout,
		renderers: render.Default(),
		observer:  noopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Level returns the current threshold.
func (l *Logger) Level() prilog.Level {
	return l.threshold.load()
}

// SetLevel changes the threshold of l and of every Logger derived from it.
// The store is atomic but not ordered with concurrent callers: goroutines
// already logging may keep seeing the previous level for a while.
func (l *Logger) SetLevel(level prilog.Level) {
	l.threshold.store(level)
}

// Enabled reports whether a call at level passes the threshold.
// The sentinels LevelDisabled and LevelEnabled are never emitted.
func (l *Logger) Enabled(level prilog.Level) bool {
	return level.Loggable() && level <= l.threshold.load()
}

// AddCallerSkip returns a Logger that attributes records n frames further
// up the stack. It shares the threshold and writer with l.
func (l *Logger) AddCallerSkip(n int) *Logger {
	c := *l
	c.callerSkip += n
	return &c
}

// WithContext implements prilog.Logger.
func (l *Logger) WithContext(ctx context.Context) prilog.Logger {
	return l.withTrace(ctx)
}

// Critical logs at LevelCritical.
func (l *Logger) Critical(template string, args ...any) {
	l.log(prilog.LevelCritical, 1, template, args)
}

// Error logs at LevelError.
func (l *Logger) Error(template string, args ...any) {
	l.log(prilog.LevelError, 1, template, args)
}

// Warning logs at LevelWarning.
func (l *Logger) Warning(template string, args ...any) {
	l.log(prilog.LevelWarning, 1, template, args)
}

// Info logs at LevelInfo.
func (l *Logger) Info(template string, args ...any) {
	l.log(prilog.LevelInfo, 1, template, args)
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(template string, args ...any) {
	l.log(prilog.LevelDebug, 1, template, args)
}

// LogDepth implements prilog.Logger.
func (l *Logger) LogDepth(depth int, level prilog.Level, template string, args ...any) {
	l.log(level, depth+1, template, args)
}

// log gates, then captures the location depth frames above its caller.
// The stack is only walked for calls that will be emitted.
func (l *Logger) log(level prilog.Level, depth int, template string, args []any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, l.callerAt(depth+1), template, args)
}
