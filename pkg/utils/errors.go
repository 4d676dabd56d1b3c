package utils

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrInvalidInput     = errors.New("invalid crawl input")              // Empty keywords or unknown entity type
	ErrFetchExhausted   = errors.New("fetch failed after all attempts")  // Wraps the last connection error
	ErrMissingField     = errors.New("expected field missing from page") // Structural marker absent
	ErrParsing          = errors.New("parsing error")                    // Wraps HTML/URL parsing errors
	ErrRequestCreation  = errors.New("failed to create HTTP request")
	ErrResponseBodyRead = errors.New("failed to read response body")
)

// IsConnectionFailure reports whether err represents a connection-level
// failure (refused, reset, timeout) that warrants a proxied retry.
// Cancellation is a deliberate abort, never transient. Deadline errors
// count as timeouts here: callers screen their own context's deadline
// before consulting this predicate.
func IsConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	// Dial-level errors surface wrapped in *url.Error by http.Client
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Fallback substring checks for errors that don't unwrap cleanly
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") {
		return true
	}
	if strings.Contains(msg, "connection reset") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return true
	}
	if strings.Contains(msg, "no such host") {
		return true
	}
	return false
}

// CategorizeError maps an error to a predefined category string for logging/metrics.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Input_Validation"
	case errors.Is(err, ErrFetchExhausted):
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "connection refused") {
			return "FetchExhausted_ConnectionRefused"
		}
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
			return "FetchExhausted_Timeout"
		}
		if strings.Contains(msg, "no such host") {
			return "FetchExhausted_DNSLookup"
		}
		return "FetchExhausted_NetworkOther"
	case errors.Is(err, ErrMissingField):
		return "Content_MissingField"
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "URL") {
			return "Content_ParsingURL"
		}
		if strings.Contains(errMsg, "HTML") {
			return "Content_ParsingHTML"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrRequestCreation):
		return "Internal_RequestCreation"
	case errors.Is(err, ErrResponseBodyRead):
		return "Network_BodyRead"
	}

	// Context errors
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	if IsConnectionFailure(err) {
		return "Network_Connection"
	}
	return "Unknown"
}
