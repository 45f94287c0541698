package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/io"
	"github.com/matzehuels/pathfinder/pkg/pathfind"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to solve")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidName, "test"),
			expected: ErrCodeInvalidName,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"missing endpoints", pathfind.ErrMissingEndpoints, ErrCodeMissingEndpoints},
		{"wrapped inconsistent path", fmt.Errorf("extract: %w", pathfind.ErrInconsistentPath), ErrCodeInconsistentPath},
		{"iteration limit", pathfind.ErrIterationLimit, ErrCodeIterationLimit},
		{"unknown algorithm", pathfind.ErrUnknownAlgorithm, ErrCodeInvalidAlgorithm},
		{"data integrity", fmt.Errorf("load: %w", graph.ErrDataIntegrity), ErrCodeDataIntegrity},
		{"unknown node", graph.ErrUnknownNode, ErrCodeUnknownNode},
		{"unknown link", graph.ErrUnknownLink, ErrCodeUnknownLink},
		{"invalid distance", graph.ErrInvalidDistance, ErrCodeInvalidDistance},
		{"unknown format", io.ErrUnknownFormat, ErrCodeInvalidFormat},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), ErrCodeFileNotFound},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"plain", errors.New("boom"), ErrCodeInternal},
		{"already coded", New(ErrCodeInvalidName, "bad"), ErrCodeInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			if c := GetCode(got); c != tt.want {
				t.Errorf("GetCode(FromDomain()) = %v, want %v", c, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("FromDomain() lost the original error %v", tt.err)
			}
		})
	}

	if FromDomain(nil) != nil {
		t.Error("FromDomain(nil) != nil")
	}
}
