// Package domain defines the core entity types, repository interfaces, and
// errors for the entitlement store.
package domain

import "fmt"

// NotFoundError indicates a referenced entity id or key does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a unique-constraint violation on create or update.
// Field names the colliding column when it is known.
type ConflictError struct {
	Message string
	Field   string
}

func (e *ConflictError) Error() string { return e.Message }

// InvalidReferenceError indicates an association operation named a parent or
// child row that does not exist in its owning table.
type InvalidReferenceError struct {
	Message string
}

func (e *InvalidReferenceError) Error() string { return e.Message }

// ValidationError indicates invalid input, caught before reaching storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnavailableError indicates a storage-level failure: connection loss,
// transaction failure, or timeout. Callers own retry policy; nothing in this
// package retries automatically.
type UnavailableError struct {
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError naming the colliding field.
func ErrConflict(field, format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...), Field: field}
}

// ErrInvalidReference creates an InvalidReferenceError with a formatted message.
func ErrInvalidReference(format string, args ...interface{}) *InvalidReferenceError {
	return &InvalidReferenceError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnavailable wraps a storage-level failure.
func ErrUnavailable(err error, format string, args ...interface{}) *UnavailableError {
	return &UnavailableError{Message: fmt.Sprintf(format, args...), Err: err}
}
