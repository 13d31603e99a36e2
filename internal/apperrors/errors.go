package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientBalance indicates a debit larger than the available account balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrBankNotLinked indicates the user has no linked bank connection.
var ErrBankNotLinked = errors.New("bank account not connected")

// ErrNoBankAccounts indicates the linked bank connection reports no accounts.
var ErrNoBankAccounts = errors.New("no bank accounts found")

// ErrExternalService indicates an external collaborator (rate provider,
// bank feed) was unreachable and no safe local fallback existed.
var ErrExternalService = errors.New("external service failure")

// ErrInternal is a generic error for unexpected internal failures.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it for failures that have no sentinel mapping.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
