package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies application errors so callers can decide how to
// surface them without string-matching messages.
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found (or has expired).
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates invalid caller input.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnauthenticated indicates a missing credential.
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"

	// ErrorTypeInvalidCredential indicates a credential that was checked and rejected.
	ErrorTypeInvalidCredential ErrorType = "INVALID_CREDENTIAL"

	// ErrorTypeQuestionGeneration indicates the question engine failed or
	// returned output that did not pass schema validation.
	ErrorTypeQuestionGeneration ErrorType = "QUESTION_GENERATION_FAILED"

	// ErrorTypeSearchFailed indicates the search engine failed for this dispatch.
	ErrorTypeSearchFailed ErrorType = "SEARCH_FAILED"

	// ErrorTypeStorageUnavailable indicates the persistent store rejected an operation.
	ErrorTypeStorageUnavailable ErrorType = "STORAGE_UNAVAILABLE"

	// ErrorTypeInternal indicates an internal server error.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error with a classification, a
// human-readable message, and an optional wrapped cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the classification of err, or ErrorTypeInternal when err is
// not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given classification.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewUnauthenticatedError creates an error for a missing credential.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthenticated, Message: message}
}

// NewInvalidCredentialError creates an error for a rejected credential.
func NewInvalidCredentialError(message string) *AppError {
	return &AppError{Type: ErrorTypeInvalidCredential, Message: message}
}

// NewQuestionGenerationError creates an error for a failed question generation.
func NewQuestionGenerationError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeQuestionGeneration, Message: message, Err: err}
}

// NewSearchFailedError creates an error for a failed search dispatch.
func NewSearchFailedError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeSearchFailed, Message: message, Err: err}
}

// NewStorageError creates an error for a failed store operation.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeStorageUnavailable, Message: message, Err: err}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}
