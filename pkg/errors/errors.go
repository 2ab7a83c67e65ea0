// Package errors provides structured error types for bannerkit.
//
// Every failure in a generation run belongs to one of three categories, and
// each category carries its own codes:
//   - Configuration: INVALID_* codes for degenerate canvases, bad manifests,
//     unsafe artifact names, unknown engines, or malformed config files
//   - I/O: IO_ERROR when a vector document or pixel image cannot be written
//   - Rendering: RENDER_ERROR and ENGINE_UNAVAILABLE when the external
//     renderer fails to start, load, size, or capture
//
// None of these are recovered locally. They propagate to the command and
// abort the batch.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCanvas, "canvas %q has zero width", name)
//	if errors.Is(err, errors.ErrCodeInvalidCanvas) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidCanvas   Code = "INVALID_CANVAS"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidEngine   Code = "INVALID_ENGINE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// I/O errors
	ErrCodeIO Code = "IO_ERROR"

	// Rendering capability errors
	ErrCodeRender            Code = "RENDER_ERROR"
	ErrCodeEngineUnavailable Code = "ENGINE_UNAVAILABLE"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is one of the configuration codes.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidCanvas, ErrCodeInvalidManifest,
		ErrCodeInvalidName, ErrCodeInvalidEngine, ErrCodeInvalidConfig:
		return true
	}
	return false
}
