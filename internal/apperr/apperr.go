// Package apperr holds the error taxonomy shared by the slot and swap
// services. Every error that crosses a service boundary is an *Error with a
// stable Code; transports translate codes to their own status space.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	NotFound         Code = "NOT_FOUND"
	Forbidden        Code = "FORBIDDEN"
	InvalidState     Code = "INVALID_STATE"
	InvalidOperation Code = "INVALID_OPERATION"
	Inconsistent     Code = "INCONSISTENT"
	Transient        Code = "TRANSIENT"

	InvalidArgument Code = "INVALID_ARGUMENT"
	Unauthenticated Code = "UNAUTHENTICATED"
	Conflict        Code = "CONFLICT"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error carrying the same code, so callers can write
// errors.Is(err, apperr.New(apperr.NotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
