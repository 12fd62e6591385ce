// Package response defines the error type handlers translate into HTTP
// replies.
package response

import (
	"errors"
)

// Error pairs a wire error code with its cause.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// NewError builds a sentinel suitable for errors.Is matching in the
// handler error mapper.
func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}
