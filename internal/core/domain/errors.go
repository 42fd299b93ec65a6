// Package domain defines the core domain model for tokmint.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes have the form TM-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "TM-CONF-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Configuration errors are detected when a scope is defined and prevent
// it from loading.
var (
	// ErrConfiguration indicates an invalid configuration value.
	ErrConfiguration = NewDomainError("TM-CONF-4000", "invalid configuration")

	// ErrTooManyTokens indicates a scope declares more than MaxTokens tokens.
	ErrTooManyTokens = NewDomainError("TM-CONF-4001", "too many token definitions")
)

// Generation errors only ever affect the single token being produced.
var (
	// ErrEntropy indicates the random source failed.
	ErrEntropy = NewDomainError("TM-TOKN-5001", "entropy source failure")

	// ErrParameterDrift indicates a resolved parameter was out of bounds at
	// request time and has been replaced by its default.
	ErrParameterDrift = NewDomainError("TM-TOKN-4220", "parameter out of range")

	// ErrCacheUnavailable indicates the token cache could not be used;
	// the token is generated without caching.
	ErrCacheUnavailable = NewDomainError("TM-CACHE-5030", "token cache unavailable")
)

// Argument errors.
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("TM-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TM-ARG-1002", "missing required argument")
)

// ConfigError returns ErrConfiguration with formatted details.
func ConfigError(format string, args ...any) *DomainError {
	return ErrConfiguration.WithDetails(fmt.Sprintf(format, args...))
}
