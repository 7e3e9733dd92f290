package logger

import (
	"runtime"
	"strings"

	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
)

// unknownLocation is reported when runtime.Caller fails. Line 0 marks it
// as not a real source line.
var unknownLocation = prilog.Location{File: "???", Line: 0}

// callerAt returns the location depth frames above the function that called
// callerAt, plus the logger's configured skip.
func (l *Logger) callerAt(depth int) prilog.Location {
	_, file, line, ok := runtime.Caller(depth + 1 + l.callerSkip)
	if !ok {
		return unknownLocation
	}
	return prilog.Location{File: file, Line: line}
}

// Basename returns the part of path after the last '/' or '\'.
// A path without separators is returned unchanged.
func Basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
