// Package domain defines the core domain model for tokmint.
package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("TM-TEST-1000", "test message"),
			expected: "[TM-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("TM-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[TM-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("TM-TEST-1000", "message 1")
	err2 := NewDomainError("TM-TEST-1000", "message 2") // Same code, different message
	err3 := NewDomainError("TM-TEST-1001", "message 1") // Different code

	// Same code should match
	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}

	// Different code should not match
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}

	// Should not match non-DomainError
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := NewDomainError("TM-TEST-1000", "wrapper").WithCause(cause)

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := NewDomainError("TM-TEST-1000", "no cause")
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	original := NewDomainError("TM-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	// Check original is unchanged
	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}

	// Check new error has details
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}

	// Check code and message are preserved
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
	if withDetails.Message != original.Message {
		t.Errorf("Message = %q, want %q", withDetails.Message, original.Message)
	}
}

func TestDomainError_WithCause(t *testing.T) {
	original := NewDomainError("TM-TEST-1000", "original message")
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	// Check original is unchanged
	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}

	// Check new error has cause
	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}

	// Check code and message are preserved
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}

func TestDomainError_Wrap(t *testing.T) {
	original := NewDomainError("TM-TEST-1000", "original")
	cause := fmt.Errorf("cause")
	wrapped := original.Wrap(cause)

	if wrapped.Cause != cause {
		t.Errorf("Wrap() should set cause, got %v", wrapped.Cause)
	}
}

func TestIsDomainError(t *testing.T) {
	err := ErrEntropy

	if !IsDomainError(err, "TM-TOKN-5001") {
		t.Error("IsDomainError should return true for matching code")
	}

	if IsDomainError(err, "TM-TOKN-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}

	if IsDomainError(fmt.Errorf("regular error"), "TM-TOKN-5001") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrEntropy)
	if !IsDomainError(wrapped, "TM-TOKN-5001") {
		t.Error("IsDomainError should work with wrapped errors")
	}
	if !IsDomainError(wrapped, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrConfiguration, "TM-CONF-4000"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrCacheUnavailable), "TM-CACHE-5030"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrConfiguration, "TM-CONF-4000"},
		{ErrTooManyTokens, "TM-CONF-4001"},
		{ErrEntropy, "TM-TOKN-5001"},
		{ErrParameterDrift, "TM-TOKN-4220"},
		{ErrCacheUnavailable, "TM-CACHE-5030"},
		{ErrInvalidArgument, "TM-ARG-1001"},
		{ErrMissingArgument, "TM-ARG-1002"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Error code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Error message should not be empty")
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := ConfigError("length %d out of range", 2048)

	if !errors.Is(err, ErrConfiguration) {
		t.Error("ConfigError should match ErrConfiguration")
	}
	if err.Details != "length 2048 out of range" {
		t.Errorf("Details = %q", err.Details)
	}
	if got := err.Error(); got != "[TM-CONF-4000] invalid configuration: length 2048 out of range" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorChaining(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ErrEntropy.
		WithDetails("token: CSRF_TOKEN").
		WithCause(cause)

	if err.Code != "TM-TOKN-5001" {
		t.Errorf("Code = %q, want %q", err.Code, "TM-TOKN-5001")
	}
	if err.Details != "token: CSRF_TOKEN" {
		t.Errorf("Details = %q", err.Details)
	}
	if err.Cause != cause {
		t.Error("Cause should be preserved")
	}
	if !errors.Is(err, ErrEntropy) {
		t.Error("errors.Is should work after chaining")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}
