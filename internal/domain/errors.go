package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Auth errors
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrNoOrganization = errors.New("no organization in session")
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
)

// ValidationError reports malformed or missing input, naming the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a state conflict: duplicate name, duplicate daily
// close, or a delete blocked by referencing rows.
type ConflictError struct {
	Message string
	// Date is set for duplicate daily-close conflicts.
	Date time.Time
	// ReferenceCount is set for delete-blocked-by-reference conflicts.
	ReferenceCount int64
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a plain ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// NewDuplicateCloseError creates the conflict for an already-closed date.
func NewDuplicateCloseError(date time.Time) *ConflictError {
	return &ConflictError{
		Message: fmt.Sprintf("a close already exists for %s", date.Format("2006-01-02")),
		Date:    date,
	}
}

// NewReferencedError creates the conflict for a delete blocked by references.
// The count is part of the message so it survives err.Error() rendering at
// the HTTP boundary.
func NewReferencedError(message string, count int64) *ConflictError {
	return &ConflictError{
		Message:        fmt.Sprintf("%s: referenced by %d movements", message, count),
		ReferenceCount: count,
	}
}

// NotFoundError reports an unknown id. Cross-tenant lookups surface as not
// found so ids never leak across organizations.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFoundError creates a NotFoundError for a resource kind.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
