// Package errors provides structured error types for cardsheet.
//
// Every precondition the sheet and compress commands can fail on has its own
// code, so callers (the CLI, tests) can tell them apart without matching on
// message text:
//
//   - DIRECTORY_NOT_FOUND: an input directory is missing or not a directory
//   - EMPTY_IMAGE_SET: an input directory holds no eligible images
//   - MISSING_BACK_IMAGES: by-name matching left fronts without a back
//   - COUNT_MISMATCH: by-order matching got different front/back counts
//   - LAYOUT_OVERFLOW: the card grid does not fit on the page
//   - IMAGE_DECODE: an image file cannot be decoded
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCountMismatch, "front/back counts differ: %d vs %d", nf, nb)
//	if errors.Is(err, errors.ErrCodeCountMismatch) {
//	    // ...
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeImageDecode, origErr, "cannot decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure kinds of a run.
const (
	// Input resolution errors
	ErrCodeDirectoryNotFound Code = "DIRECTORY_NOT_FOUND"
	ErrCodeEmptyImageSet     Code = "EMPTY_IMAGE_SET"
	ErrCodeMissingBacks      Code = "MISSING_BACK_IMAGES"
	ErrCodeCountMismatch     Code = "COUNT_MISMATCH"

	// Geometry errors
	ErrCodeLayoutOverflow Code = "LAYOUT_OVERFLOW"

	// Content errors
	ErrCodeImageDecode  Code = "IMAGE_DECODE"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInvalidPDF   Code = "INVALID_PDF"

	// Configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and cause, if any) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
