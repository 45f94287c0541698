// Package errors provides structured error types for the pathfinder
// application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_* and *_NOT_FOUND: Missing resources
//   - Search outcomes that are failures (MISSING_ENDPOINTS, INCONSISTENT_PATH)
//   - INTERNAL_*: Unexpected internal errors
//
// Domain packages (graph, pathfind, io, store) return plain sentinel errors.
// [FromDomain] classifies them at the CLI and HTTP boundary.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidName, "invalid graph name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidName) {
//	    // Handle validation error
//	}
//
//	// Classify a domain error
//	st, err := pathfind.Dijkstra(ctx, g)
//	if err != nil {
//	    return errors.FromDomain(err)
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/io"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
	"github.com/matzehuels/pathfinder/pkg/pattern"
	"github.com/matzehuels/pathfinder/pkg/render"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidDistance  Code = "INVALID_DISTANCE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeUnknownNode   Code = "UNKNOWN_NODE"
	ErrCodeUnknownLink   Code = "UNKNOWN_LINK"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeGraphNotFound Code = "GRAPH_NOT_FOUND"

	// Graph and search errors
	ErrCodeDataIntegrity    Code = "DATA_INTEGRITY"
	ErrCodeMissingEndpoints Code = "MISSING_ENDPOINTS"
	ErrCodeInconsistentPath Code = "INCONSISTENT_PATH"
	ErrCodeIterationLimit   Code = "ITERATION_LIMIT"

	// Cancellation
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// domainCodes maps sentinel errors of the domain packages to codes. Order
// matters: the first match wins.
var domainCodes = []struct {
	err  error
	code Code
}{
	{pathfind.ErrMissingEndpoints, ErrCodeMissingEndpoints},
	{pathfind.ErrInconsistentPath, ErrCodeInconsistentPath},
	{pathfind.ErrIterationLimit, ErrCodeIterationLimit},
	{pathfind.ErrUnknownAlgorithm, ErrCodeInvalidAlgorithm},
	{graph.ErrDataIntegrity, ErrCodeDataIntegrity},
	{graph.ErrUnknownNode, ErrCodeUnknownNode},
	{graph.ErrUnknownLink, ErrCodeUnknownLink},
	{graph.ErrInvalidDistance, ErrCodeInvalidDistance},
	{io.ErrUnknownFormat, ErrCodeInvalidFormat},
	{render.ErrUnknownFormat, ErrCodeInvalidFormat},
	{render.ErrNoConverter, ErrCodeUnsupported},
	{pattern.ErrCanvasTooSmall, ErrCodeInvalidInput},
	{os.ErrNotExist, ErrCodeFileNotFound},
	{context.DeadlineExceeded, ErrCodeTimeout},
	{context.Canceled, ErrCodeCanceled},
}

// FromDomain classifies err. An error that already carries a code, and nil,
// are returned unchanged. Unrecognised errors become INTERNAL_ERROR.
func FromDomain(err error) error {
	if err == nil || GetCode(err) != "" {
		return err
	}
	for _, m := range domainCodes {
		if errors.Is(err, m.err) {
			return &Error{Code: m.code, Message: err.Error(), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}
