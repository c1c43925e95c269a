// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

/*
Package apperr defines the centralized error handling framework for the
Carlex batch tooling.

It provides a rich error type that bridges the gap between low-level
storage errors and the operator-facing run reports.

Architecture:

  - AppError: A struct containing a machine-readable Code and an
    operator-friendly message.
  - Classification: Terminal outcomes (an unresolvable mention) are NOT
    errors; only structural failures (missing brand, unreachable store,
    broken merge) flow through this package.
  - Mapping: Explicit constructors per error class keep call sites honest
    about what actually went wrong.

Every error that leaves a job or store should be wrapped as an [AppError]
so the run summary can count failures by class.
*/
package apperr

import (
	"errors"
	"fmt"
)

// Error codes recognized by the run reporters.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeValidation  = "VALIDATION_ERROR"
	CodeUnavailable = "STORE_UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Carlex batch jobs.
//
// It carries a machine-readable code, an operator-safe message, and an
// optional slice of field-level validation errors.
//
// The Cause field is for structured logging only and never appears in the
// run summary, to keep reports free of SQL fragments and driver noise.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to surface in reports.
	Message string `json:"error"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR cases.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the operator-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Generation") // Returns "Generation not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// Conflict creates a CONFLICT [AppError] for unique or foreign-key
// constraint violations.
func Conflict(msg string, cause error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: msg,
		Cause:   cause,
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional
// per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Details: details,
	}
}

// Unavailable creates a STORE_UNAVAILABLE [AppError]. Jobs treat it as a
// batch-level failure: abort cleanly, keep committed work.
func Unavailable(msg string, cause error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: msg,
		Cause:   cause,
	}
}

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected
// failure. The cause is stored for logging but never reported verbatim.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// Wrapf annotates an [AppError] chain with positional context while
// preserving the code for [errors.As] callers.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the error code of err, or CodeInternal when err carries no
// [AppError] in its chain. Used by run summaries to bucket failures.
func CodeOf(err error) string {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return CodeInternal
}
