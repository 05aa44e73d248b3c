package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTransport    = errors.New("agent transport failed")
	ErrFormat       = errors.New("unexpected response format")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input. Message is user-facing.
	ValidationError struct {
		Message string
	}

	// TransportError indicates the agent transport reported failure or raised.
	// Message is the user-facing text; Cause is the raised error, if any.
	TransportError struct {
		Message string
		Cause   error
	}

	// FormatError indicates the transport succeeded but the payload was wholly absent.
	FormatError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *TransportError) Error() string  { return e.Message }
func (e *FormatError) Error() string     { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *TransportError) StatusCode() int  { return http.StatusBadGateway }
func (e *FormatError) StatusCode() int     { return http.StatusBadGateway }

// Is implementations so errors.Is() matches the sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *TransportError) Is(target error) bool  { return target == ErrTransport }
func (e *FormatError) Is(target error) bool     { return target == ErrFormat }

// Unwrap exposes the raised transport error
func (e *TransportError) Unwrap() error { return e.Cause }
