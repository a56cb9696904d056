package crud

import (
	"slices"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Values is an ordered column → value set for an INSERT or a partial UPDATE.
// For updates it holds only the columns the caller supplied.
type Values struct {
	cols []string
	vals []any
}

// Set assigns val to col, replacing any earlier assignment.
func (v *Values) Set(col string, val any) {
	if i := slices.Index(v.cols, col); i >= 0 {
		v.vals[i] = val
		return
	}
	v.cols = append(v.cols, col)
	v.vals = append(v.vals, val)
}

// Get returns the value assigned to col.
func (v Values) Get(col string) (any, bool) {
	if i := slices.Index(v.cols, col); i >= 0 {
		return v.vals[i], true
	}
	return nil, false
}

// Columns returns the assigned column names in assignment order.
func (v Values) Columns() []string { return slices.Clone(v.cols) }

// Len returns the number of assigned columns.
func (v Values) Len() int { return len(v.cols) }

// SetJSON stores val as JSON text (nil becomes NULL).
func (v *Values) SetJSON(col string, val any) error {
	enc, err := codec.Encode(val)
	if err != nil {
		return err
	}
	v.Set(col, enc)
	return nil
}

// SetFlag stores b as a 0/1 flag.
func (v *Values) SetFlag(col string, b bool) {
	v.Set(col, codec.Flag(b))
}

// Scalar copies a supplied patch field. An explicit null clears the column.
func Scalar[T any](v *Values, col string, o domain.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		v.Set(col, nil)
		return
	}
	v.Set(col, o.Value)
}

// JSON copies a supplied structured patch field as JSON text.
func JSON[T any](v *Values, col string, o domain.Optional[T]) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		v.Set(col, nil)
		return nil
	}
	return v.SetJSON(col, o.Value)
}

// Flag copies a supplied boolean patch field as a 0/1 flag.
func Flag(v *Values, col string, o domain.Optional[bool]) {
	if o.Present() {
		v.SetFlag(col, o.Value)
	}
}
