// Package docerr defines the structured error kinds surfaced by the
// canonicalization, Merkle, diff, and extraction packages. The core never
// logs; every failure is wrapped here and returned to the caller.
package docerr

import "fmt"

// Code identifies the kind of failure that occurred.
type Code string

const (
	// MalformedInput means the document text could not be parsed into a
	// tree by the front-end parser.
	MalformedInput Code = "MALFORMED_INPUT"
	// PathNotFound means a requested canonical path has no leaf in the
	// built path->hash map.
	PathNotFound Code = "PATH_NOT_FOUND"
	// InvalidProofArgs means a consistency proof was requested with an
	// old_size outside [1, n].
	InvalidProofArgs Code = "INVALID_PROOF_ARGS"
	// ExtractionFailed means the extraction facade's configured path or
	// XPath expression could not be evaluated against the document.
	ExtractionFailed Code = "EXTRACTION_FAILED"
)

// Error is the structured error type returned across package boundaries.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New creates an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf attaches a code and formatted message to an underlying cause.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}
