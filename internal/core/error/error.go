package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// NotFoundMessage describes a missing storage key.
	NotFoundMessage = "not found"
	// EmptyCartMessage is shown when a checkout is attempted on an empty cart.
	EmptyCartMessage = "Your cart is empty"
)

// ErrNotFound is matched by errors.Is for any absent key or record.
var ErrNotFound = errors.New(NotFoundMessage)

// ErrNotPersisted marks a cart mutation that was applied in memory but could
// not be written to storage.
var ErrNotPersisted = errors.New("cart not persisted")

var (
	// ErrEmptyCart rejects a checkout of an empty cart.
	ErrEmptyCart = New(nil, http.StatusUnprocessableEntity, EmptyCartMessage)
	// ErrProductNotFound is returned by catalog lookups.
	ErrProductNotFound = New(ErrNotFound, http.StatusNotFound, "product not found")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Invalid builds a 400 error whose message is safe to show to the caller.
func Invalid(format string, args ...any) *AppError {
	return New(nil, http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message carried by err, or the system fallback.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return SystemErrorMessage
}
