package failure

import (
	"errors"
	"fmt"
)

// Kind represents different kinds of failures that can occur during a
// client operation
type Kind string

const (
	KindNetwork    Kind = "network"
	KindThrottling Kind = "throttling"
	KindClockSkew  Kind = "clock_skew"
	KindServer     Kind = "server"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindUnknown    Kind = "unknown"
)

// Error represents a classified failure with kind information.
// A non-zero StatusCode marks a service-reported failure; zero means the
// failure happened below the service layer (transport, DNS, ...).
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a failure of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewService creates a service-reported failure carrying a status code
func NewService(kind Kind, statusCode int, message string) *Error {
	return &Error{Kind: kind, Message: message, StatusCode: statusCode}
}

// Wrap creates a failure of the given kind wrapping an underlying cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Sentinel errors for transport-level conditions that are always worth
// retrying. Callers wrap these as causes; retry configuration matches them
// through the error chain.
var (
	ErrConnectionReset = errors.New("connection reset by peer")
	ErrConnectionIdle  = errors.New("connection closed while idle")
	ErrRequestTimeout  = errors.New("request timed out")
)

// RetryableErrors is the fixed set of sentinel errors that warrant a retry
// whenever a failure or any of its causes matches one of them
var RetryableErrors = []error{
	ErrConnectionReset,
	ErrConnectionIdle,
	ErrRequestTimeout,
}
