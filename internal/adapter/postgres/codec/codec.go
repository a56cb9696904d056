// Package codec converts between domain values and their stored form:
// structured values live in TEXT columns as JSON and booleans in SMALLINT
// columns as 0/1.
package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Encode renders v as JSON text. A nil value (including a nil slice or map)
// is stored as SQL NULL.
func Encode(v any) (*string, error) {
	if isNil(v) {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	s := string(b)
	return &s, nil
}

// DecodeArray parses a stored JSON array. NULL or empty text yields an empty
// slice. Malformed text is a storage error naming the column.
func DecodeArray[T any](column string, raw *string) ([]T, error) {
	out := []T{}
	if blank(raw) {
		return out, nil
	}
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil, corrupt(column, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeObject parses a stored JSON object. NULL or empty text yields an
// empty map. Malformed text is a storage error naming the column.
func DecodeObject(column string, raw *string) (map[string]any, error) {
	out := map[string]any{}
	if blank(raw) {
		return out, nil
	}
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil, corrupt(column, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Flag maps a boolean to its stored 0/1 form.
func Flag(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// Bool maps a stored flag back to a boolean. Any nonzero value is true.
func Bool(v int16) bool {
	return v != 0
}

func blank(raw *string) bool {
	return raw == nil || strings.TrimSpace(*raw) == ""
}

func corrupt(column string, err error) error {
	return fmt.Errorf("decode column %s: %w: %w", column, domain.ErrStorage, err)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
