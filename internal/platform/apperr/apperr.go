// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for ShopHub.

It provides a rich error type that bridges the gap between low-level domain and
storage errors and the JSON error body returned to clients.

Taxonomy:

  - VALIDATION_ERROR (400): missing or malformed input.
  - DUPLICATE_RESOURCE (400): a unique field is already taken.
  - NOT_FOUND (404): the addressed record does not exist.
  - MISSING_TOKEN (401): a protected route was called without a bearer token.
  - INVALID_TOKEN (403): the bearer token failed verification.
  - INTERNAL_ERROR (500): anything unexpected.

Every error that leaves the service layer should be an [AppError] so that
[respond.Error] can render the {message, status} body consistently.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeDuplicate   = "DUPLICATE_RESOURCE"
	CodeNotFound    = "NOT_FOUND"
	CodeBadLogin    = "INVALID_CREDENTIALS"
	CodeMissingAuth = "MISSING_TOKEN"
	CodeInvalidAuth = "INVALID_TOKEN"
	CodeRateLimited = "RATE_LIMITED"
	CodeTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeInternal    = "INTERNAL_ERROR"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for the ShopHub API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code, echoed in the body as "status".
	HTTPStatus int `json:"status"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an [*AppError] with the same code, so that
// errors.Is(err, apperr.NotFound("x")) matches any NOT_FOUND error.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithCause returns a copy of e that carries cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// WithMessage returns a copy of e with a different client-facing message.
func (e *AppError) WithMessage(msg string) *AppError {
	clone := *e
	clone.Message = msg
	return &clone
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Duplicate creates a 400 [AppError] for unique-constraint violations.
func Duplicate(msg string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredentials creates a 400 [AppError] for a failed password check.
func InvalidCredentials(msg string) *AppError {
	return &AppError{
		Code:       CodeBadLogin,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingToken creates a 401 [AppError] for requests without credentials.
func MissingToken(msg string) *AppError {
	return &AppError{
		Code:       CodeMissingAuth,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a 403 [AppError] for credentials that failed verification.
func InvalidToken(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidAuth,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// PayloadTooLarge creates a 413 [AppError].
func PayloadTooLarge(msg string) *AppError {
	return &AppError{
		Code:       CodeTooLarge,
		Message:    msg,
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal Server Error.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError].
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
