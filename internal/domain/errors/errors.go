package errors

import (
	"errors"
	"fmt"
)

// Error types for the generator domain
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypePersistence ErrorType = "persistence"
	ErrorTypeClipboard   ErrorType = "clipboard"
	ErrorTypeInternal    ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Error constructors
func NewValidationError(code, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewPersistenceError reports a failed read or write against the key-value backend.
// These never abort a generation batch.
func NewPersistenceError(op, message string) *AppError {
	return &AppError{
		Type:    ErrorTypePersistence,
		Code:    "PERSISTENCE_FAILED",
		Message: message,
		Details: map[string]interface{}{"operation": op},
	}
}

func NewClipboardError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeClipboard,
		Code:    "CLIPBOARD_FAILED",
		Message: message,
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
}

// Validation codes
const (
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeInvalidAreaCode = "INVALID_AREA_CODE"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidTheme    = "INVALID_THEME"
)

// Wrap wraps an error with a message using fmt.Errorf with %w
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsType checks if an error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Code extracts the error code, or "" for non-application errors
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
