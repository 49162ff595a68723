// Package transport provides the HTTP transport used to reach the chat service.
package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard sentinel errors for non-OK responses.
var (
	// ErrNotFound indicates the endpoint or team does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the token lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// maxMessageLen caps how much of a response body ends up in an APIError.
const maxMessageLen = 512

// APIError represents a non-OK response from the chat service.
type APIError struct {
	// Service is the name of the remote service (e.g., "slack").
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the response body or status text.
	Message string

	// Endpoint identifies what was called. Never contains a token.
	Endpoint string
}

// NewAPIError builds an APIError from a status code and raw response body.
func NewAPIError(service string, statusCode int, endpoint string, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen] + "..."
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    msg,
		Endpoint:   endpoint,
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap returns the underlying sentinel error based on status code.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsRateLimited reports whether the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
