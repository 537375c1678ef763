package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidQuality     = "INVALID_QUALITY"
	ErrCodeUnknownCard        = "UNKNOWN_CARD"
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
)

// Sentinels carried inside AppError.Err so callers can use errors.Is.
var (
	ErrInvalidQuality = stderrors.New("invalid quality")
	ErrUnknownCard    = stderrors.New("unknown card")
	ErrPersistence    = stderrors.New("persistence failure")
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_QUALITY")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewInvalidQualityError rejects a rating outside 1..4 or an unknown label.
func NewInvalidQualityError(value any) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidQuality,
		Message: fmt.Sprintf("quality must be 1-4 or one of again/hard/good/easy, got %v", value),
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidQuality,
	}
}

// NewUnknownCardError is returned when a review targets a card that does not exist.
func NewUnknownCardError(cardID int64) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownCard,
		Message: fmt.Sprintf("card not found: %d", cardID),
		Status:  http.StatusNotFound,
		Err:     ErrUnknownCard,
	}
}

// NewPersistenceError wraps a storage failure. The cause stays reachable via errors.Is/As.
func NewPersistenceError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceFailure,
		Message: op + " failed",
		Status:  http.StatusInternalServerError,
		Err:     fmt.Errorf("%w: %w", ErrPersistence, err),
	}
}

// As extracts an *AppError from err, wrapping anything else as INTERNAL_ERROR.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
