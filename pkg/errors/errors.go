// Package errors carries the typed error codes shared by the API and its
// client. Each code decides its HTTP status and how much leaks to callers.
package errors

import (
	stdErrors "errors"
	"net/http"
	"strings"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is rendered on the wire.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

const (
	retryable   = 1 << iota
	showDetails
)

func meta(status int, public string, flags int) Metadata {
	return Metadata{
		HTTPStatus:     status,
		PublicMessage:  public,
		Retryable:      flags&retryable != 0,
		DetailsAllowed: flags&showDetails != 0,
	}
}

var registry = map[Code]Metadata{
	CodeValidation:   meta(http.StatusBadRequest, "validation failed", showDetails),
	CodeUnauthorized: meta(http.StatusUnauthorized, "authentication required", 0),
	CodeNotFound:     meta(http.StatusNotFound, "resource not found", 0),
	CodeConflict:     meta(http.StatusConflict, "conflict detected", 0),
	CodeIdempotency:  meta(http.StatusConflict, "idempotency key reused", showDetails),
	CodeRateLimit:    meta(http.StatusTooManyRequests, "rate limit exceeded", 0),
	CodeInternal:     meta(http.StatusInternalServerError, "internal server error", retryable),
	CodeDependency:   meta(http.StatusServiceUnavailable, "dependency unavailable", retryable|showDetails),
}

// MetadataFor falls back to the CodeInternal entry for unknown codes.
func MetadataFor(code Code) Metadata {
	if m, ok := registry[code]; ok {
		return m
	}
	return registry[CodeInternal]
}

// ParseCode maps a wire code back onto a known Code, defaulting to CodeInternal.
func ParseCode(value string) Code {
	if _, ok := registry[Code(value)]; ok {
		return Code(value)
	}
	return CodeInternal
}

// CodeForStatus picks the code a bare HTTP status most likely carried.
func CodeForStatus(status int) Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimit
	}
	if status >= http.StatusInternalServerError {
		return CodeDependency
	}
	return CodeInternal
}

// Error is a coded error with an optional cause and caller-facing details.
// The nil *Error reads as an empty CodeInternal.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap is New with a cause; a nil err yields a plain New.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails sets details in place and returns e for chaining.
func (e *Error) WithDetails(details any) *Error {
	if e != nil {
		e.details = details
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{string(e.code), e.message}
	if e.cause != nil {
		parts = append(parts, e.cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the outermost *Error in err's chain.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the outermost typed code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	return As(err).Code()
}

func is(err error, code Code) bool { return err != nil && CodeOf(err) == code }

func IsValidation(err error) bool      { return is(err, CodeValidation) }
func IsUnauthenticated(err error) bool { return is(err, CodeUnauthorized) }
func IsRemoteFailure(err error) bool   { return is(err, CodeDependency) }
func IsNotFound(err error) bool        { return is(err, CodeNotFound) }
