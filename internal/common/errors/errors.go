// Package errors provides standardized error handling for the bot pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationMalformed ErrorCode = "CLASSIFICATION_MALFORMED"
	ErrCodeEntityNotFound          ErrorCode = "ENTITY_NOT_FOUND"
	ErrCodeCategoryNotFound        ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodeUpstreamUnavailable     ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeNoMatches               ErrorCode = "NO_MATCHES"
	ErrCodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassificationMalformedError marks a language-model reply that could not be
// parsed into an intent. The raw reply goes into Details for debugging.
func NewClassificationMalformedError(raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationMalformed,
		Message:   "Model reply is not parseable intent JSON",
		Details:   raw,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEntityNotFoundError creates a non-retryable not-found error for a Pokémon lookup.
func NewEntityNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEntityNotFound,
		Message:   "Pokémon not found in upstream data source",
		Details:   fmt.Sprintf("name: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCategoryNotFoundError creates a non-retryable not-found error for a type lookup.
func NewCategoryNotFoundError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCategoryNotFound,
		Message:   "Pokémon type not found in upstream data source",
		Details:   fmt.Sprintf("type: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates a retryable network/service error for a dependent call.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoMatchesError creates a non-retryable empty-result error for a suggestion query.
func NewNoMatchesError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoMatches,
		Message:   "Suggestion query returned no matches",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error from inside message handling.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the error code of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	return Normalize(err).Code
}

// IsNotFound reports whether the error is one of the 404-equivalent codes.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case ErrCodeEntityNotFound, ErrCodeCategoryNotFound:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CLASSIFICATION"):
		return "AI"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "NO_MATCHES"):
		return "LOOKUP"
	case strings.Contains(codeStr, "UPSTREAM"):
		return "UPSTREAM"
	default:
		return "OTHER"
	}
}
