// Package errors defines the failure kinds an ingestion run can end in.
//
// Callers check the kind with Is against the sentinel values:
//
//	if errors.Is(err, errors.ErrTransport) {
//	    // the bulletin API could not be reached
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Kind classifies an Error.
type Kind string

const (
	KindTransport Kind = "TRANSPORT"
	KindProtocol  Kind = "PROTOCOL"
	KindStorage   Kind = "STORAGE"
	KindInput     Kind = "INPUT"
	KindConfig    Kind = "CONFIG"
)

// Error is a failure with a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrTransport = &Error{Kind: KindTransport, Message: "transport error"}
	ErrProtocol  = &Error{Kind: KindProtocol, Message: "protocol error"}
	ErrStorage   = &Error{Kind: KindStorage, Message: "storage error"}
	ErrInput     = &Error{Kind: KindInput, Message: "input error"}
	ErrConfig    = &Error{Kind: KindConfig, Message: "config error"}
)

// Transport wraps a network or HTTP status failure.
func Transport(err error, format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf(format, args...), Err: err}
}

// Protocol reports an application-level failure from the remote API.
func Protocol(err error, format string, args ...any) *Error {
	return &Error{Kind: KindProtocol, Message: fmt.Sprintf(format, args...), Err: err}
}

// Storage wraps a failed write to or read from the document store.
func Storage(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...), Err: err}
}

// Input reports unusable user input.
func Input(format string, args ...any) *Error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// Config reports a missing or invalid setting.
func Config(err error, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
