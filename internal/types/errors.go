package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure the service can surface
type ErrorKind string

const (
	// ErrInvalidInput represents caller errors (empty message, oversized file)
	ErrInvalidInput ErrorKind = "InvalidInput"

	// ErrAuthMissing represents a provider with no API key configured
	ErrAuthMissing ErrorKind = "AuthMissing"

	// ErrNetworkFailure represents transport-level failures reaching a provider
	ErrNetworkFailure ErrorKind = "NetworkFailure"

	// ErrHTTPError represents a non-2xx reply from a provider
	ErrHTTPError ErrorKind = "HttpError"

	// ErrMalformedResponse represents a provider reply missing expected fields
	ErrMalformedResponse ErrorKind = "MalformedResponse"

	// ErrNotFound represents an unknown conversation id
	ErrNotFound ErrorKind = "NotFound"
)

// ProviderError is the failure type returned by provider adapters and the
// chat orchestration on top of them.
type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Kind, e.Provider, e.StatusCode, e.Message)
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewAuthMissingError reports a provider whose API key is not configured
func NewAuthMissingError(provider string) *ProviderError {
	return &ProviderError{
		Kind:     ErrAuthMissing,
		Provider: provider,
		Message:  "API key is not configured",
	}
}

// NewNetworkFailureError wraps a transport error from a provider call
func NewNetworkFailureError(provider string, err error) *ProviderError {
	return &ProviderError{
		Kind:     ErrNetworkFailure,
		Provider: provider,
		Message:  err.Error(),
	}
}

// NewHTTPStatusError reports a provider rejecting the request
func NewHTTPStatusError(provider string, statusCode int, body string) *ProviderError {
	return &ProviderError{
		Kind:       ErrHTTPError,
		Provider:   provider,
		StatusCode: statusCode,
		Message:    body,
	}
}

// NewMalformedResponseError reports a provider reply that could not be used
func NewMalformedResponseError(provider string, detail string) *ProviderError {
	return &ProviderError{
		Kind:     ErrMalformedResponse,
		Provider: provider,
		Message:  detail,
	}
}

// NewInvalidInputError reports a caller error
func NewInvalidInputError(detail string) *ProviderError {
	return &ProviderError{
		Kind:    ErrInvalidInput,
		Message: detail,
	}
}

// NewNotFoundError reports an unknown entity id
func NewNotFoundError(detail string) *ProviderError {
	return &ProviderError{
		Kind:    ErrNotFound,
		Message: detail,
	}
}

// KindOf extracts the error kind, defaulting to server-side failure semantics
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrNetworkFailure
}

// HTTPStatusOf maps an error to the response status. Provider HTTP errors
// echo the upstream status when it is a valid error code.
func HTTPStatusOf(err error) int {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError
	}
	switch pe.Kind {
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrHTTPError:
		if pe.StatusCode >= 400 {
			return pe.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
