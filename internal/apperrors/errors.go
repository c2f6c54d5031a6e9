package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrUnauthorized indicates that the caller's role or batch ownership does not permit the operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidArgument indicates a malformed quantity, an unknown reference or a self-transfer.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrValidation is kept for input-binding failures; it is the same kind as ErrInvalidArgument.
var ErrValidation = ErrInvalidArgument

// ErrInsufficientStock indicates that the requested quantity exceeds what the caller holds.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrQuotaExceeded indicates that a transfer would push a reseller above its maxQuantity.
var ErrQuotaExceeded = errors.New("quota exceeded")

// AppError carries an HTTP-ish status code for infrastructure failures
// (database, transaction management) alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Kind returns a stable label for the class of err, used for metrics and
// response mapping. Unknown errors are reported as "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
