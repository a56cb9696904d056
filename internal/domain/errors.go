package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// Stable error kinds exposed to callers.
const (
	KindValidation = "VALIDATION_ERROR"
	KindNotFound   = "NOT_FOUND"
	KindConflict   = "CONFLICT"
	KindStorage    = "STORAGE_ERROR"
	KindAuditWrite = "AUDIT_WRITE_ERROR"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ConflictError reports a uniqueness violation on a natural key.
type ConflictError struct {
	Table string
	Key   map[string]any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: record with %v already exists", e.Table, e.Key)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// AuditWriteError is produced when an audit entry cannot be persisted.
// It is logged for operators and never returned to API callers.
type AuditWriteError struct {
	Table    string
	RecordID string
	Kind     AuditKind
	Err      error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("audit %s %s/%s: %v", e.Kind, e.Table, e.RecordID, e.Err)
}

func (e *AuditWriteError) Unwrap() error { return e.Err }

// Kind returns the stable error kind for err. Unknown errors are reported as
// storage errors so engine details never leak as a distinct kind.
func Kind(err error) string {
	var auditErr *AuditWriteError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &auditErr):
		return KindAuditWrite
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindStorage
	}
}
