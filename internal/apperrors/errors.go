package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedCurrency indicates a currency code outside the configured supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrInvalidAmount indicates a non-positive or otherwise unusable monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrRateUnavailable indicates that no usable rate snapshot exists yet for a required pair.
var ErrRateUnavailable = errors.New("rate unavailable")

// ErrProvider indicates a failure while talking to the external rate provider.
var ErrProvider = errors.New("rate provider error")

// ErrAuditWriteFailed indicates the conversion audit record could not be persisted.
// A conversion must never be reported successful without its audit entry.
var ErrAuditWriteFailed = errors.New("audit write failed")

// ErrDataIntegrity indicates stored data violating an invariant (e.g., a
// non-positive persisted rate). These are alerting conditions, not ordinary
// control flow.
var ErrDataIntegrity = errors.New("data integrity fault")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause so
// handlers can map service failures without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewInternalServerError creates an AppError that matches ErrInternal.
func NewInternalServerError(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	} else if !errors.Is(err, ErrInternal) {
		err = fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}
