package fmp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrConfiguration = errors.New("fmp: invalid configuration")
	ErrArgument      = errors.New("fmp: invalid argument")
	ErrHTTP          = errors.New("fmp: unexpected status code")
	ErrParse         = errors.New("fmp: malformed response")
	ErrValidation    = errors.New("fmp: response does not match shape")
	ErrTimeout       = errors.New("fmp: request timed out")
)

// statusHints explains the status codes the vendor documents.
var statusHints = map[int]string{
	400: "bad request, check the query parameters",
	401: "invalid or missing API key",
	402: "endpoint or symbol not available on the current plan",
	403: "forbidden, the key is not allowed to access this endpoint",
	404: "unknown endpoint",
	429: "request limit reached",
	500: "internal server error",
	503: "service unavailable",
}

// ConfigurationError reports a client that cannot be built.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return "fmp: " + e.Reason }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ArgumentError reports a missing or invalid call argument. It is returned
// before any request is sent.
type ArgumentError struct {
	Method   string
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	if e.Method == "" {
		return fmt.Sprintf("fmp: %s %s", e.Argument, reason)
	}
	return fmt.Sprintf("fmp: %s: %s %s", e.Method, e.Argument, reason)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

func required(method, argument string) error {
	return &ArgumentError{Method: method, Argument: argument}
}

// HTTPError reports a response outside the 2xx range. The body is not read.
type HTTPError struct {
	StatusCode int
	Endpoint   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("fmp: HTTP error %d for %s", e.StatusCode, e.Endpoint)
	if hint, ok := statusHints[e.StatusCode]; ok {
		msg += ": " + hint
	}
	return msg
}

func (e *HTTPError) Is(target error) bool { return target == ErrHTTP }

// ParseError reports a body that is not JSON or that cannot be decoded into
// the typed result.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fmp: decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Issue is a single shape mismatch.
type Issue struct {
	// Path locates the value, e.g. "[0].price".
	Path    string
	Message string
}

func (i Issue) String() string { return i.Path + ": " + i.Message }

// ValidationError lists every mismatch between a response and its shape.
type ValidationError struct {
	Endpoint string
	Shape    string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fmp: %s response does not match %s shape", e.Endpoint, e.Shape)
	if len(e.Issues) > 0 {
		b.WriteString(": ")
		b.WriteString(e.Issues[0].String())
	}
	if n := len(e.Issues) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %d more)", n)
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TimeoutError reports a call that exceeded the configured timeout.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fmp: %s timed out after %s", e.Endpoint, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
