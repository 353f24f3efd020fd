package apperrors

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
)

// ValidationError reports missing or malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError reports an id that does not resolve to a row.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// OperationError reports a statement that did not take effect.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func NewOperationError(message string, err error) *OperationError {
	return &OperationError{Message: message, Err: err}
}

// StoreError wraps a failure raised by the data store. Its message carries
// the store's own error text.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return "Database error: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(err error) *StoreError {
	return &StoreError{Err: err}
}

// FromStore classifies a store failure. Failures that mean the store could
// not be reached become an OperationError carrying unavailable; everything
// else becomes a StoreError.
func FromStore(err error, unavailable string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return NewOperationError(unavailable, err)
	}
	return NewStoreError(err)
}

// StatusCode maps an error to the HTTP status of its envelope.
func StatusCode(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}

	var operationErr *OperationError
	if errors.As(err, &operationErr) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// Classified reports whether err already belongs to the taxonomy above.
func Classified(err error) bool {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		operationErr  *OperationError
		storeErr      *StoreError
	)
	return errors.As(err, &validationErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &operationErr) ||
		errors.As(err, &storeErr)
}
