package bulletin

import (
	"errors"
	"fmt"
)

// Application error codes. These map domain failure classes to a small,
// stable vocabulary that callers can branch on without inspecting
// implementation-specific error types.
const (
	ECONFLICT    = "conflict"
	EEXTRACT     = "extract"     // raw document had no usable structure
	EINTERNAL    = "internal"    // unexpected internal error
	EINVALID     = "invalid"     // validation failure
	ENOTFOUND    = "not_found"   // entity does not exist
	ERENDER      = "render"      // layout engine failed to produce an artifact
	EUNAVAILABLE = "unavailable" // network fetch or timeout failure
)

// Error represents an application-specific error. Application errors carry
// machine-readable codes and human-readable messages.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface. Not meant to be surfaced to end
// users as-is; use ErrorMessage for that.
func (e *Error) Error() string {
	return fmt.Sprintf("bulletin error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
