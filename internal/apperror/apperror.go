// Package apperror defines the error taxonomy shared by the catalog services,
// the seed loader and the HTTP handlers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// NotFoundError reports a referenced identity that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func NotFound(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError covers blank required fields and malformed literals in
// ingestion input.
type ValidationError struct {
	Field   string
	Message string
}

func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError is returned when a guarded delete hits live associations or a
// unique name is already taken. Count is the number of blocking movies.
type ConflictError struct {
	Resource string
	Name     string
	Count    int
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// HasMovies builds the conflict raised by a non-forced delete.
func HasMovies(resource, name string, count int) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Name:     name,
		Count:    count,
		Message:  fmt.Sprintf("cannot delete %s '%s' because it is associated with %d movies", resource, name, count),
	}
}

func Duplicate(resource, name string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Name:     name,
		Message:  fmt.Sprintf("%s with name '%s' already exists", resource, name),
	}
}
