package render

import (
	"errors"
	"syscall"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCoder is implemented by library errors that carry a numeric code
// alongside their description.
type ErrorCoder interface {
	error
	Code() int
}

// errorCodeRenderer renders code-carrying errors by their description text.
// gRPC statuses are rendered as "<Code>: <message>" to keep the line short.
type errorCodeRenderer struct{}

func (errorCodeRenderer) Render(v any) (string, bool) {
	switch e := v.(type) {
	case codes.Code:
		return e.String(), true
	case *status.Status:
		return describeStatus(e), true
	case syscall.Errno:
		return e.Error(), true
	case ErrorCoder:
		return e.Error(), true
	case error:
		var grpcErr interface{ GRPCStatus() *status.Status }
		if errors.As(e, &grpcErr) {
			return describeStatus(grpcErr.GRPCStatus()), true
		}
	}
	return "", false
}

func describeStatus(s *status.Status) string {
	if s.Message() == "" {
		return s.Code().String()
	}
	return s.Code().String() + ": " + s.Message()
}
