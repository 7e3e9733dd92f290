package logger

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gxo-labs/prilog/internal/format"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
)

// FailedToFormat replaces the message of a record whose template could not
// be rendered with its arguments.
const FailedToFormat = "Failed to format"

// maxPooledBuffer caps the capacity of buffers returned to the pool so that
// one very long line does not pin a large allocation.
const maxPooledBuffer = 16 << 10

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Dispatch implements prilog.Logger. loc is used as given: the basename of
// loc.File is taken, but loc.Line is not checked, so callers passing a
// non-positive line get it verbatim in the prefix.
func (l *Logger) Dispatch(level prilog.Level, loc prilog.Location, template string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, loc, template, args)
}

// emit builds the complete line in a private buffer and hands it to the
// writer in one Write call, so lines from concurrent callers never mix.
// It never panics and never reports an error to the caller.
func (l *Logger) emit(level prilog.Level, loc prilog.Location, template string, args []any) {
	bufp := bufferPool.Get().(*[]byte)
	buf := appendPrefix((*bufp)[:0], level, loc)
	prefixLen := len(buf)

	buf, err := l.appendMessage(buf, template, args)
	if err != nil {
		buf = append(buf[:prefixLen], FailedToFormat...)
		l.observer.FormatFailed(level)
	} else {
		buf = append(buf, l.suffix...)
	}
	buf = append(buf, '\n')

	if err := l.write(buf); err != nil {
		l.observer.WriteFailed(level, err)
	}
	l.observer.LineEmitted(level)

	if cap(buf) <= maxPooledBuffer {
		*bufp = buf
		bufferPool.Put(bufp)
	}
}

// appendPrefix writes "<priority>[<basename>:<line>] ".
func appendPrefix(dst []byte, level prilog.Level, loc prilog.Location) []byte {
	dst = append(dst, '<')
	dst = strconv.AppendInt(dst, int64(prilog.ToPriority(level)), 10)
	dst = append(dst, '>', '[')
	dst = append(dst, Basename(loc.File)...)
	dst = append(dst, ':')
	dst = strconv.AppendInt(dst, int64(loc.Line), 10)
	return append(dst, ']', ' ')
}

// appendMessage renders the template. A panic anywhere in formatting
// (a renderer, a String method fmt did not catch) is turned into an error.
func (l *Logger) appendMessage(dst []byte, template string, args []any) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = dst, fmt.Errorf("panic while formatting: %v", r)
		}
	}()
	return format.Append(dst, l.renderers, template, args...)
}

// write issues the single Write for a line, then flushes buffered writers.
// A short write is reported as io.ErrShortWrite by conforming writers.
func (l *Logger) write(line []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while writing: %v", r)
		}
	}()
	if _, err = l.out.Write(line); err != nil {
		return err
	}
	if f, ok := l.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
