package gateway

import (
	"errors"
	"fmt"
)

// ConnectivityMessage is reported when the backend could not be reached.
const ConnectivityMessage = "connection error: check your internet connection and try again"

// ErrCircuitOpen is wrapped by the NetworkError returned while the circuit
// breaker rejects calls.
var ErrCircuitOpen = errors.New("backend circuit open")

// NetworkError means no HTTP response was received.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Message == "" {
		return ConnectivityMessage
	}
	return e.Message
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Status is kept so callers can tell quota
// rejections (403) and missing resources (404) apart.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ParseError means a request or response body was not valid JSON.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}
