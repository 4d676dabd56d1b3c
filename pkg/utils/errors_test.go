package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConnectionFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "connection refused", err: syscall.ECONNREFUSED, expected: true},
		{name: "connection reset", err: syscall.ECONNRESET, expected: true},
		{
			name:     "wrapped refused via url.Error and net.OpError",
			err:      &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			expected: true,
		},
		{
			name:     "dial op error",
			err:      &net.OpError{Op: "dial", Err: errors.New("host unreachable")},
			expected: true,
		},
		{name: "timeout substring", err: errors.New("i/o timeout"), expected: true},
		{name: "context canceled", err: context.Canceled, expected: false},
		{name: "deadline counts as timeout", err: context.DeadlineExceeded, expected: true},
		{
			name:     "canceled wrapped in url.Error",
			err:      &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled},
			expected: false,
		},
		{name: "unrelated error", err: errors.New("boom"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConnectionFailure(tt.err))
		})
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: "None"},
		{name: "invalid input", err: fmt.Errorf("%w: empty keywords", ErrInvalidInput), expected: "Input_Validation"},
		{
			name:     "exhausted with refused cause",
			err:      fmt.Errorf("%w: %w", ErrFetchExhausted, errors.New("dial tcp: connection refused")),
			expected: "FetchExhausted_ConnectionRefused",
		},
		{
			name:     "exhausted with timeout cause",
			err:      fmt.Errorf("%w: %w", ErrFetchExhausted, errors.New("dial tcp: i/o timeout")),
			expected: "FetchExhausted_Timeout",
		},
		{name: "missing field", err: fmt.Errorf("%w: owner marker", ErrMissingField), expected: "Content_MissingField"},
		{name: "html parse", err: fmt.Errorf("%w: parsing HTML from page", ErrParsing), expected: "Content_ParsingHTML"},
		{name: "context canceled", err: context.Canceled, expected: "System_ContextCanceled"},
		{name: "unknown", err: errors.New("boom"), expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeError(tt.err))
		})
	}
}
