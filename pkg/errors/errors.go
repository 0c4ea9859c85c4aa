// Package errors provides the unified error type and factory functions for the
// job portal backend.  Every layer (config, infrastructure, interfaces) uses
// AppError as the single carrier for structured error information so that HTTP
// responses, log lines and exit messages stay consistent.
package errors

import (
	"errors"
	"fmt"
)

// ─────────────────────────────────────────────────────────────────────────────
// AppError: the canonical error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the service.
// It supports Go 1.13+ wrapping so errors.Is / errors.As / errors.Unwrap work
// transparently across layers.
//
// Usage:
//
//	return errors.New(errors.ErrCodeRoutePrefixDuplicate, "prefix already registered")
//	return errors.Wrap(err, errors.ErrCodeDatabaseUnavailable, "ping failed")
//	return errors.NotFound("route not found").WithDetail("path=/api/v2")
type AppError struct {
	// Code is the typed error code that identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description, safe for API output.
	Message string

	// Detail carries supplementary debugging context.
	Detail string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>: <cause>", omitting empty segments.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status mapped from the error's code.
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// It is safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an AppError that wraps err.  It returns nil when err is nil
// so it can be used inline.  When err is already an *AppError and code is
// CodeUnknown the original code is preserved.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// NotFound constructs a CodeNotFound AppError.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return New(CodeInvalidParam, message)
}

// Internal constructs a CodeInternal AppError.
func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

// NotImplemented constructs a CodeNotImplemented AppError.
func NotImplemented(message string) *AppError {
	return New(CodeNotImplemented, message)
}

// Unavailable constructs an ErrCodeServiceUnavailable AppError.
func Unavailable(message string) *AppError {
	return New(ErrCodeServiceUnavailable, message)
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		if ae == nil {
			return false
		}
		err = ae.Cause
		ae = nil
	}
	return false
}

// IsNotFound reports whether err's chain carries CodeNotFound.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// GetCode extracts the ErrorCode from the first *AppError in err's chain.
// nil yields CodeOK; a chain without an AppError yields CodeUnknown.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// StatusOf maps any error to an HTTP status.  Non-AppErrors map to 500.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.HTTPStatus()
	}
	return HTTPStatus(CodeInternal)
}

// Is and As re-export the standard library helpers so callers importing this
// package under the name "errors" keep access to them.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

//Personal.AI order the ending
