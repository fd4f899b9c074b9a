package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure so controllers can map it to an HTTP status.
type ErrorKind int

const (
	// KindInput marks missing or malformed request input.
	KindInput ErrorKind = iota
	// KindResolutionMiss marks a city or coordinate lookup with no match.
	KindResolutionMiss
	// KindUpstreamUnavailable marks a transport failure, timeout, non-JSON body
	// or an explicit "model not available" reply from an upstream.
	KindUpstreamUnavailable
	// KindUpstreamRejected marks an upstream that answered with a domain error
	// of its own; the upstream message is surfaced to the caller.
	KindUpstreamRejected
	// KindInternal marks storage or processing failures inside this service.
	KindInternal
)

// DomainError carries an error kind alongside a human-readable message.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewInputError creates an input validation error.
func NewInputError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// NewResolutionMiss creates a lookup-miss error.
func NewResolutionMiss(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindResolutionMiss, Message: fmt.Sprintf(format, args...)}
}

// NewUpstreamUnavailable creates an unavailable-upstream error wrapping its cause.
func NewUpstreamUnavailable(cause error, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewUpstreamRejected creates an upstream-rejection error carrying the upstream message.
func NewUpstreamRejected(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindUpstreamRejected, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError creates an internal error wrapping its cause.
func NewInternalError(cause error, format string, args ...any) *DomainError {
	return &DomainError{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// HTTPStatus maps an error to the response status dictated by its kind.
// Errors that are not DomainError default to 500.
func HTTPStatus(err error) int {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Kind {
	case KindInput:
		return http.StatusBadRequest
	case KindResolutionMiss:
		return http.StatusNotFound
	case KindUpstreamUnavailable, KindUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
