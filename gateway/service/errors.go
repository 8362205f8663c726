package service

import "fmt"

// Error marks a failure inside a business operation, as opposed to caller
// mistakes. The HTTP layer maps it to 502.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(message string, cause error) *Error {
	return &Error{Message: message, Cause: cause}
}

func newErrorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
