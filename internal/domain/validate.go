package domain

import "strings"

// Record is implemented by every catalog entity.
type Record interface {
	RecordID() int64
}

// fieldErrors accumulates field-level validation failures.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

// required rejects blank text.
func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "required")
	}
}

// requiredSlice rejects a missing structured list. An explicitly empty list is accepted.
func requiredSlice[T any](f *fieldErrors, field string, value []T) {
	if value == nil {
		f.add(field, "required")
	}
}

// requiredMap rejects a missing structured object.
func requiredMap(f *fieldErrors, field string, value map[string]any) {
	if value == nil {
		f.add(field, "required")
	}
}

// notNullText rejects an explicit null or blank value for a NOT NULL text column.
func (f *fieldErrors) notNullText(field string, o Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null || strings.TrimSpace(o.Value) == "" {
		f.add(field, "must not be empty")
	}
}

// notNull rejects an explicit null for a NOT NULL column.
func notNull[T any](f *fieldErrors, field string, o Optional[T]) {
	if o.Set && o.Null {
		f.add(field, "must not be null")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Errors: f}
}
