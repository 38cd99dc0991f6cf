// Package store implements the dual-layout content store of a tabgo
// table: a row axis, a column axis and one backing array per column
// (column-store) or per row (row-store), plus the cursor protocol and the
// multi-key comparators built on top of it.
package store

import (
	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/core"
)

// Content owns the physical storage of a table. Exactly one backing
// array exists per column when columnStore is true, else one per row;
// every backing array is at least as long as the opposite axis's
// capacity.
//
// Coordinate-level reads are safe for concurrent use from distinct
// cursors; concurrent writes are safe only on disjoint coordinates.
// Structural mutation must be externally serialized.
type Content[R comparable, C comparable] struct {
	rows        *axis.Index[R]
	cols        *axis.Index[C]
	columnStore bool
	arrays      []array.Array
}

// New creates an empty column-store content with the given key sets, a
// uniform element kind, and at least capacity row slots.
func New[R comparable, C comparable](rowKeys []R, colKeys []C, kind array.Kind, capacity int) (*Content[R, C], error) {
	rows, err := axis.New(rowKeys)
	if err != nil {
		return nil, err
	}
	cols, err := axis.New(colKeys)
	if err != nil {
		return nil, err
	}
	rowCap := max(len(rowKeys), capacity)
	rows.Reserve(rowCap)
	arrays := make([]array.Array, 0, len(colKeys))
	for range colKeys {
		a, err := array.New(kind, rowCap)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, a)
	}
	return &Content[R, C]{
		rows:        rows,
		cols:        cols,
		columnStore: true,
		arrays:      arrays,
	}, nil
}

// FromParts assembles a content from existing axes and arrays. It is the
// escape hatch used by derived views (sorts, filters, key remaps); the
// arrays are shared, not copied.
func FromParts[R comparable, C comparable](rows *axis.Index[R], cols *axis.Index[C], columnStore bool, arrays []array.Array) *Content[R, C] {
	return &Content[R, C]{
		rows:        rows,
		cols:        cols,
		columnStore: columnStore,
		arrays:      arrays,
	}
}

// Rows returns the row axis index.
func (ct *Content[R, C]) Rows() *axis.Index[R] { return ct.rows }

// Cols returns the column axis index.
func (ct *Content[R, C]) Cols() *axis.Index[C] { return ct.cols }

// IsColumnStore reports whether the backing arrays represent columns.
func (ct *Content[R, C]) IsColumnStore() bool { return ct.columnStore }

// Arrays returns the backing array list. Shared, not copied.
func (ct *Content[R, C]) Arrays() []array.Array { return ct.arrays }

// RowCount returns the logical row count.
func (ct *Content[R, C]) RowCount() int { return ct.rows.Size() }

// ColCount returns the logical column count.
func (ct *Content[R, C]) ColCount() int { return ct.cols.Size() }

// RowCapacity returns the shared backing length available to rows.
func (ct *Content[R, C]) RowCapacity() int {
	if ct.columnStore && len(ct.arrays) > 0 {
		return ct.arrays[0].Len()
	}
	return ct.rows.Capacity()
}

// RowCoordinate resolves a row key to its physical coordinate.
func (ct *Content[R, C]) RowCoordinate(key R) (core.Coordinate, bool) {
	return ct.rows.Coordinate(key)
}

// RowCoordinateOf is like RowCoordinate but fails with a typed error
// naming the missing key.
func (ct *Content[R, C]) RowCoordinateOf(key R) (core.Coordinate, error) {
	return ct.rows.CoordinateOf(key)
}

// RowCoordinateAt resolves a row ordinal to its physical coordinate.
func (ct *Content[R, C]) RowCoordinateAt(ordinal core.Ordinal) (core.Coordinate, error) {
	return ct.rows.CoordinateAt(ordinal)
}

// ColCoordinate resolves a column key to its physical coordinate.
func (ct *Content[R, C]) ColCoordinate(key C) (core.Coordinate, bool) {
	return ct.cols.Coordinate(key)
}

// ColCoordinateOf is like ColCoordinate but fails with a typed error
// naming the missing key.
func (ct *Content[R, C]) ColCoordinateOf(key C) (core.Coordinate, error) {
	return ct.cols.CoordinateOf(key)
}

// ColCoordinateAt resolves a column ordinal to its physical coordinate.
func (ct *Content[R, C]) ColCoordinateAt(ordinal core.Ordinal) (core.Coordinate, error) {
	return ct.cols.CoordinateAt(ordinal)
}

// arrayFor picks the backing array for a cell. This single branch is the
// hot path; it must not allocate.
func (ct *Content[R, C]) arrayFor(rowCoord, colCoord core.Coordinate) (array.Array, core.Coordinate) {
	if ct.columnStore {
		return ct.arrays[colCoord], rowCoord
	}
	return ct.arrays[rowCoord], colCoord
}

// BoolAt reads the bool at a physical cell.
func (ct *Content[R, C]) BoolAt(rowCoord, colCoord core.Coordinate) (bool, error) {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.Bool(at)
}

// SetBoolAt writes the bool at a physical cell.
func (ct *Content[R, C]) SetBoolAt(rowCoord, colCoord core.Coordinate, v bool) error {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.SetBool(at, v)
}

// IntAt reads the int at a physical cell.
func (ct *Content[R, C]) IntAt(rowCoord, colCoord core.Coordinate) (int, error) {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.Int(at)
}

// SetIntAt writes the int at a physical cell.
func (ct *Content[R, C]) SetIntAt(rowCoord, colCoord core.Coordinate, v int) error {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.SetInt(at, v)
}

// Int64At reads the int64 at a physical cell.
func (ct *Content[R, C]) Int64At(rowCoord, colCoord core.Coordinate) (int64, error) {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.Int64(at)
}

// SetInt64At writes the int64 at a physical cell.
func (ct *Content[R, C]) SetInt64At(rowCoord, colCoord core.Coordinate, v int64) error {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.SetInt64(at, v)
}

// Float64At reads the float64 at a physical cell.
func (ct *Content[R, C]) Float64At(rowCoord, colCoord core.Coordinate) (float64, error) {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.Float64(at)
}

// SetFloat64At writes the float64 at a physical cell.
func (ct *Content[R, C]) SetFloat64At(rowCoord, colCoord core.Coordinate, v float64) error {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.SetFloat64(at, v)
}

// ValueAt reads the boxed value at a physical cell; nil when null.
func (ct *Content[R, C]) ValueAt(rowCoord, colCoord core.Coordinate) any {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.Value(at)
}

// SetValueAt writes the boxed value at a physical cell; nil marks null.
func (ct *Content[R, C]) SetValueAt(rowCoord, colCoord core.Coordinate, v any) error {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.SetValue(at, v)
}

// IsNullAt reports whether a physical cell is null.
func (ct *Content[R, C]) IsNullAt(rowCoord, colCoord core.Coordinate) bool {
	a, at := ct.arrayFor(rowCoord, colCoord)
	return a.IsNull(at)
}

// AddRow appends a row key. Only legal in column-store layout and on a
// non-filter row axis; capacity is grown as needed. It reports whether
// the backing arrays were expanded.
func (ct *Content[R, C]) AddRow(key R, policy axis.DuplicatePolicy) (added, expanded bool, err error) {
	if !ct.columnStore {
		return false, false, ErrNotColumnStore
	}
	added, err = ct.rows.Add(key, policy)
	if err != nil || !added {
		return added, false, err
	}
	return true, ct.EnsureCapacity(ct.rows.Size()), nil
}

// AddRows appends a batch of row keys under the same legality rules as
// AddRow, growing capacity once. It returns the keys actually added.
func (ct *Content[R, C]) AddRows(keys []R, policy axis.DuplicatePolicy) (added []R, expanded bool, err error) {
	if !ct.columnStore {
		return nil, false, ErrNotColumnStore
	}
	added, err = ct.rows.AddAll(keys, policy)
	if len(added) > 0 {
		expanded = ct.EnsureCapacity(ct.rows.Size())
	}
	return added, expanded, err
}

// AddColumn appends a column backed by arr, expanded to the current row
// capacity. Only legal in column-store layout.
func (ct *Content[R, C]) AddColumn(key C, arr array.Array, policy axis.DuplicatePolicy) (bool, error) {
	if !ct.columnStore {
		return false, ErrNotColumnStore
	}
	added, err := ct.cols.Add(key, policy)
	if err != nil || !added {
		return added, err
	}
	arr.Expand(ct.RowCapacity())
	ct.arrays = append(ct.arrays, arr)
	return true, nil
}

// EnsureCapacity grows every backing array so that rowCount rows fit.
// Growth is 1.5x amortized, clamped up to rowCount when the step is not
// enough. It reports whether any array was expanded.
func (ct *Content[R, C]) EnsureCapacity(rowCount int) bool {
	cur := ct.RowCapacity()
	if rowCount <= cur {
		return false
	}
	next := max(rowCount, cur+cur/2)
	for _, a := range ct.arrays {
		a.Expand(next)
	}
	ct.rows.Reserve(next)
	return true
}

// Transpose returns a content with row and column axes swapped and the
// layout flag flipped. The backing arrays are shared; no data is copied.
func Transpose[R comparable, C comparable](ct *Content[R, C]) *Content[C, R] {
	return &Content[C, R]{
		rows:        ct.cols,
		cols:        ct.rows,
		columnStore: !ct.columnStore,
		arrays:      ct.arrays,
	}
}

// Equal reports whether two contents present the same (row, col) → value
// mapping, with identical key order on both axes. Physical layout does
// not participate: a transposed or re-layouted copy of the same data is
// equal.
func (ct *Content[R, C]) Equal(other *Content[R, C]) bool {
	if ct.rows.Size() != other.rows.Size() || ct.cols.Size() != other.cols.Size() {
		return false
	}
	for i := 0; i < ct.rows.Size(); i++ {
		ka, _ := ct.rows.KeyAt(core.Ordinal(i))
		kb, _ := other.rows.KeyAt(core.Ordinal(i))
		if ka != kb {
			return false
		}
	}
	for j := 0; j < ct.cols.Size(); j++ {
		ka, _ := ct.cols.KeyAt(core.Ordinal(j))
		kb, _ := other.cols.KeyAt(core.Ordinal(j))
		if ka != kb {
			return false
		}
	}
	rowCoordsA := ct.rows.CoordinateSlice()
	rowCoordsB := other.rows.CoordinateSlice()
	colCoordsA := ct.cols.CoordinateSlice()
	colCoordsB := other.cols.CoordinateSlice()
	for i := range rowCoordsA {
		for j := range colCoordsA {
			va := ct.ValueAt(rowCoordsA[i], colCoordsA[j])
			vb := other.ValueAt(rowCoordsB[i], colCoordsB[j])
			if !valueEqual(va, vb) {
				return false
			}
		}
	}
	return true
}
