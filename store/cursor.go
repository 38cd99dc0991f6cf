package store

import (
	"errors"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/core"
)

// Cursor is a mutable, reusable pointer into a content's view space. A
// movement call resolves a key or ordinal to physical coordinates and
// re-selects the addressed backing array; the typed accessors then read
// or write at that location.
//
// One logical traversal = one cursor instance. Cursors must never be
// shared across concurrent tasks; concurrent readers each take their own
// cursor via Content.Cursor.
type Cursor[R comparable, C comparable] struct {
	content  *Content[R, C]
	rowOrd   core.Ordinal
	colOrd   core.Ordinal
	rowCoord core.Coordinate
	colCoord core.Coordinate
	arr      array.Array
}

// Cursor returns a fresh, unpositioned cursor over this content.
func (ct *Content[R, C]) Cursor() *Cursor[R, C] {
	return &Cursor[R, C]{
		content:  ct,
		rowOrd:   -1,
		colOrd:   -1,
		rowCoord: core.NoCoordinate,
		colCoord: core.NoCoordinate,
	}
}

// reselect keeps the addressed array consistent with the current
// coordinates. Row movement selects the array in row-store layout,
// column movement in column-store layout.
func (cu *Cursor[R, C]) reselect() {
	ct := cu.content
	if ct.columnStore {
		if cu.colCoord != core.NoCoordinate {
			cu.arr = ct.arrays[cu.colCoord]
		}
		return
	}
	if cu.rowCoord != core.NoCoordinate {
		cu.arr = ct.arrays[cu.rowCoord]
	}
}

// RowAt moves the cursor to the row at the given ordinal.
func (cu *Cursor[R, C]) RowAt(ordinal core.Ordinal) error {
	coord, err := cu.content.rows.CoordinateAt(ordinal)
	if err != nil {
		return err
	}
	cu.rowOrd, cu.rowCoord = ordinal, coord
	cu.reselect()
	return nil
}

// ColAt moves the cursor to the column at the given ordinal.
func (cu *Cursor[R, C]) ColAt(ordinal core.Ordinal) error {
	coord, err := cu.content.cols.CoordinateAt(ordinal)
	if err != nil {
		return err
	}
	cu.colOrd, cu.colCoord = ordinal, coord
	cu.reselect()
	return nil
}

// Row moves the cursor to the row with the given key.
func (cu *Cursor[R, C]) Row(key R) error {
	ord, err := cu.content.rows.OrdinalOf(key)
	if err != nil {
		return err
	}
	return cu.RowAt(ord)
}

// Col moves the cursor to the column with the given key.
func (cu *Cursor[R, C]) Col(key C) error {
	ord, err := cu.content.cols.OrdinalOf(key)
	if err != nil {
		return err
	}
	return cu.ColAt(ord)
}

// TryRow probes a row key, reporting success instead of erroring.
func (cu *Cursor[R, C]) TryRow(key R) bool { return cu.Row(key) == nil }

// TryCol probes a column key, reporting success instead of erroring.
func (cu *Cursor[R, C]) TryCol(key C) bool { return cu.Col(key) == nil }

// TryRowAt probes a row ordinal, reporting success instead of erroring.
func (cu *Cursor[R, C]) TryRowAt(ordinal core.Ordinal) bool { return cu.RowAt(ordinal) == nil }

// TryColAt probes a column ordinal, reporting success instead of erroring.
func (cu *Cursor[R, C]) TryColAt(ordinal core.Ordinal) bool { return cu.ColAt(ordinal) == nil }

// AtOrdinals moves the cursor to (row, col) by ordinals.
func (cu *Cursor[R, C]) AtOrdinals(row, col core.Ordinal) error {
	if err := cu.RowAt(row); err != nil {
		return err
	}
	return cu.ColAt(col)
}

// AtKeys moves the cursor to (row, col) by keys.
func (cu *Cursor[R, C]) AtKeys(row R, col C) error {
	if err := cu.Row(row); err != nil {
		return err
	}
	return cu.Col(col)
}

// RowOrdinal returns the current row ordinal, -1 when unpositioned.
func (cu *Cursor[R, C]) RowOrdinal() core.Ordinal { return cu.rowOrd }

// ColOrdinal returns the current column ordinal, -1 when unpositioned.
func (cu *Cursor[R, C]) ColOrdinal() core.Ordinal { return cu.colOrd }

// RowKey returns the key of the current row.
func (cu *Cursor[R, C]) RowKey() (R, error) {
	return cu.content.rows.KeyAt(cu.rowOrd)
}

// ColKey returns the key of the current column.
func (cu *Cursor[R, C]) ColKey() (C, error) {
	return cu.content.cols.KeyAt(cu.colOrd)
}

// at returns the slot within the addressed array.
func (cu *Cursor[R, C]) at() core.Coordinate {
	if cu.content.columnStore {
		return cu.rowCoord
	}
	return cu.colCoord
}

func (cu *Cursor[R, C]) positioned() error {
	if cu.arr == nil || cu.rowCoord == core.NoCoordinate || cu.colCoord == core.NoCoordinate {
		return ErrUnpositioned
	}
	return nil
}

// annotate re-raises array-level failures as a location-annotated error
// naming the offending cell.
func (cu *Cursor[R, C]) annotate(err error) error {
	if err == nil {
		return nil
	}
	var mismatch *array.ErrTypeMismatch
	if !errors.As(err, &mismatch) && !errors.Is(err, ErrUnpositioned) {
		return err
	}
	rk, _ := cu.RowKey()
	ck, _ := cu.ColKey()
	return &CellError{RowKey: rk, ColKey: ck, cause: err}
}

// Bool reads the bool at the current position.
func (cu *Cursor[R, C]) Bool() (bool, error) {
	if err := cu.positioned(); err != nil {
		return false, cu.annotate(err)
	}
	v, err := cu.arr.Bool(cu.at())
	return v, cu.annotate(err)
}

// SetBool writes the bool at the current position.
func (cu *Cursor[R, C]) SetBool(v bool) error {
	if err := cu.positioned(); err != nil {
		return cu.annotate(err)
	}
	return cu.annotate(cu.arr.SetBool(cu.at(), v))
}

// Int reads the int at the current position.
func (cu *Cursor[R, C]) Int() (int, error) {
	if err := cu.positioned(); err != nil {
		return 0, cu.annotate(err)
	}
	v, err := cu.arr.Int(cu.at())
	return v, cu.annotate(err)
}

// SetInt writes the int at the current position.
func (cu *Cursor[R, C]) SetInt(v int) error {
	if err := cu.positioned(); err != nil {
		return cu.annotate(err)
	}
	return cu.annotate(cu.arr.SetInt(cu.at(), v))
}

// Int64 reads the int64 at the current position.
func (cu *Cursor[R, C]) Int64() (int64, error) {
	if err := cu.positioned(); err != nil {
		return 0, cu.annotate(err)
	}
	v, err := cu.arr.Int64(cu.at())
	return v, cu.annotate(err)
}

// SetInt64 writes the int64 at the current position.
func (cu *Cursor[R, C]) SetInt64(v int64) error {
	if err := cu.positioned(); err != nil {
		return cu.annotate(err)
	}
	return cu.annotate(cu.arr.SetInt64(cu.at(), v))
}

// Float64 reads the float64 at the current position.
func (cu *Cursor[R, C]) Float64() (float64, error) {
	if err := cu.positioned(); err != nil {
		return 0, cu.annotate(err)
	}
	v, err := cu.arr.Float64(cu.at())
	return v, cu.annotate(err)
}

// SetFloat64 writes the float64 at the current position.
func (cu *Cursor[R, C]) SetFloat64(v float64) error {
	if err := cu.positioned(); err != nil {
		return cu.annotate(err)
	}
	return cu.annotate(cu.arr.SetFloat64(cu.at(), v))
}

// Value reads the boxed value at the current position; nil when null or
// unpositioned.
func (cu *Cursor[R, C]) Value() any {
	if cu.positioned() != nil {
		return nil
	}
	return cu.arr.Value(cu.at())
}

// SetValue writes the boxed value at the current position.
func (cu *Cursor[R, C]) SetValue(v any) error {
	if err := cu.positioned(); err != nil {
		return cu.annotate(err)
	}
	return cu.annotate(cu.arr.SetValue(cu.at(), v))
}

// IsNull reports whether the current cell is null.
func (cu *Cursor[R, C]) IsNull() bool {
	if cu.positioned() != nil {
		return true
	}
	return cu.arr.IsNull(cu.at())
}

// NotNull reports whether the current cell holds a value.
func (cu *Cursor[R, C]) NotNull() bool { return !cu.IsNull() }

// Compare orders this cursor's current value against another's. Identical
// cursors compare equal; null sorts lowest; values of the same dynamic
// type use natural ordering; non-null values of differing types compare
// equal. The last rule is deliberate: it keeps sorts over heterogeneous
// object columns from inventing a cross-type order.
func (cu *Cursor[R, C]) Compare(other *Cursor[R, C]) int {
	if cu == other {
		return 0
	}
	return array.CompareValues(cu.Value(), other.Value())
}

// Copy returns an independent cursor at the same position. Scans use it
// to keep a "current best" cursor distinct from the scanning cursor.
func (cu *Cursor[R, C]) Copy() *Cursor[R, C] {
	clone := *cu
	return &clone
}
