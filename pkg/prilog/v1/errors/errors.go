package errors

import (
	"errors"
	"fmt"
)

// --- prilog Core Error Types ---

// ConfigError represents an error encountered while reading or decoding
// the logging configuration (file access, YAML syntax, schema compilation).
type ConfigError struct {
	Message string
	Cause   error
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{Message: message, Cause: cause}
}
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
func (e *ConfigError) Unwrap() error { return e.Cause }

// ValidationError indicates that a decoded configuration (schema version,
// level name, output target) failed validation checks.
type ValidationError struct {
	Message string
	Cause   error
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
func (e *ValidationError) Unwrap() error { return e.Cause }

// FormatError reports a malformed message template or a template that
// references an argument that was not supplied. Offset is the byte offset
// in the template where the problem was detected.
type FormatError struct {
	Template string
	Offset   int
	Reason   string
}

func NewFormatError(template string, offset int, reason string) *FormatError {
	return &FormatError{Template: template, Offset: offset, Reason: reason}
}
func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at offset %d in %q: %s", e.Offset, e.Template, e.Reason)
}

// IsFormatError checks if an error is a FormatError using errors.As.
func IsFormatError(err error) bool {
	var fmtErr *FormatError
	return errors.As(err, &fmtErr)
}
