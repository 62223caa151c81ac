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

// ErrPersistence indicates that the underlying key-value store failed a read or write.
var ErrPersistence = errors.New("persistence error")

// ErrAuth indicates that the identity provider rejected an OTP send, confirm or sign-out.
var ErrAuth = errors.New("authentication error")

// ErrUnauthorized indicates that the caller has no live session.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError carries a user-facing title and message for a rejected field.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, title, message string) error {
	return &ValidationError{Field: field, Title: title, Message: message}
}

// AuthError wraps an identity provider failure with the message shown to the user.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is reports ErrAuth as a match so callers can branch on the category.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates an AuthError for the given operation.
func NewAuthError(op, message string, err error) error {
	return &AuthError{Op: op, Message: message, Err: err}
}
