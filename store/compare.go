package store

import (
	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/core"
)

// Comparator orders two physical coordinates of one axis.
type Comparator func(a, b core.Coordinate) int

// Reverse flips the comparator's direction.
func (c Comparator) Reverse() Comparator {
	return func(a, b core.Coordinate) int { return -c(a, b) }
}

// Composite chains comparators left to right: earlier comparators take
// precedence and the first non-zero comparison wins.
func Composite(cmps ...Comparator) Comparator {
	if len(cmps) == 1 {
		return cmps[0]
	}
	return func(a, b core.Coordinate) int {
		for _, cmp := range cmps {
			if r := cmp(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// columnComparator orders row coordinates by one column's values. When
// the column has its own backing array (column-store layout) the hot
// kinds compare without boxing.
func columnComparator[R comparable, C comparable](ct *Content[R, C], colCoord core.Coordinate, multiplier int) Comparator {
	if !ct.columnStore {
		return func(a, b core.Coordinate) int {
			return multiplier * array.CompareValues(ct.ValueAt(a, colCoord), ct.ValueAt(b, colCoord))
		}
	}
	return arrayComparator(ct.arrays[colCoord], multiplier)
}

// rowComparator is the transposed analogue over one row's values.
func rowComparator[R comparable, C comparable](ct *Content[R, C], rowCoord core.Coordinate, multiplier int) Comparator {
	if ct.columnStore {
		return func(a, b core.Coordinate) int {
			return multiplier * array.CompareValues(ct.ValueAt(rowCoord, a), ct.ValueAt(rowCoord, b))
		}
	}
	return arrayComparator(ct.arrays[rowCoord], multiplier)
}

// arrayComparator builds a kind-dispatched comparator bound to one
// backing array. The kind switch happens once at construction; the
// returned comparator's per-call path is monomorphic. Null sorts lowest.
func arrayComparator(arr array.Array, multiplier int) Comparator {
	nullCmp := func(a, b core.Coordinate) (int, bool) {
		an, bn := arr.IsNull(a), arr.IsNull(b)
		switch {
		case an && bn:
			return 0, true
		case an:
			return -multiplier, true
		case bn:
			return multiplier, true
		}
		return 0, false
	}
	switch arr.Kind() {
	case array.KindInt:
		return func(a, b core.Coordinate) int {
			if r, done := nullCmp(a, b); done {
				return r
			}
			av, _ := arr.Int(a)
			bv, _ := arr.Int(b)
			switch {
			case av < bv:
				return -multiplier
			case av > bv:
				return multiplier
			}
			return 0
		}
	case array.KindInt64:
		return func(a, b core.Coordinate) int {
			if r, done := nullCmp(a, b); done {
				return r
			}
			av, _ := arr.Int64(a)
			bv, _ := arr.Int64(b)
			switch {
			case av < bv:
				return -multiplier
			case av > bv:
				return multiplier
			}
			return 0
		}
	case array.KindFloat64:
		return func(a, b core.Coordinate) int {
			if r, done := nullCmp(a, b); done {
				return r
			}
			av, _ := arr.Float64(a)
			bv, _ := arr.Float64(b)
			switch {
			case av < bv:
				return -multiplier
			case av > bv:
				return multiplier
			}
			return 0
		}
	default:
		return func(a, b core.Coordinate) int {
			return multiplier * array.CompareValues(arr.Value(a), arr.Value(b))
		}
	}
}

// RowComparator builds a multi-key comparator over row coordinates from
// the given column keys. Precedence follows the argument order; the
// multiplier must be +1 (ascending) or -1 (descending) and only negates
// individual comparisons, so tie-break behavior is direction-independent.
func (ct *Content[R, C]) RowComparator(colKeys []C, multiplier int) (Comparator, error) {
	if multiplier != 1 && multiplier != -1 {
		return nil, ErrInvalidMultiplier
	}
	cmps := make([]Comparator, len(colKeys))
	for i, key := range colKeys {
		coord, err := ct.cols.CoordinateOf(key)
		if err != nil {
			return nil, err
		}
		cmps[i] = columnComparator(ct, coord, multiplier)
	}
	return Composite(cmps...), nil
}

// RowKeyComparator orders row coordinates by the natural order of their
// row keys. It backs key-based sorts when no column keys are given.
func (ct *Content[R, C]) RowKeyComparator(multiplier int) (Comparator, error) {
	if multiplier != 1 && multiplier != -1 {
		return nil, ErrInvalidMultiplier
	}
	return keyComparator(ct.rows, multiplier), nil
}

// ColKeyComparator orders column coordinates by the natural order of
// their column keys.
func (ct *Content[R, C]) ColKeyComparator(multiplier int) (Comparator, error) {
	if multiplier != 1 && multiplier != -1 {
		return nil, ErrInvalidMultiplier
	}
	return keyComparator(ct.cols, multiplier), nil
}

func keyComparator[K comparable](ix *axis.Index[K], multiplier int) Comparator {
	keys := ix.KeySlice()
	coords := ix.CoordinateSlice()
	byCoord := make(map[core.Coordinate]any, len(keys))
	for i, c := range coords {
		byCoord[c] = keys[i]
	}
	return func(a, b core.Coordinate) int {
		return multiplier * array.CompareValues(byCoord[a], byCoord[b])
	}
}

// ColComparator is the transposed analogue of RowComparator: a multi-key
// comparator over column coordinates from the given row keys.
func (ct *Content[R, C]) ColComparator(rowKeys []R, multiplier int) (Comparator, error) {
	if multiplier != 1 && multiplier != -1 {
		return nil, ErrInvalidMultiplier
	}
	cmps := make([]Comparator, len(rowKeys))
	for i, key := range rowKeys {
		coord, err := ct.rows.CoordinateOf(key)
		if err != nil {
			return nil, err
		}
		cmps[i] = rowComparator(ct, coord, multiplier)
	}
	return Composite(cmps...), nil
}

// SortedRows returns a view of this content whose row axis is a sorted
// copy; the receiver's ordinal order is never mutated and the backing
// arrays are shared. A nil comparator resets the copy to natural
// insertion order.
func (ct *Content[R, C]) SortedRows(parallel bool, cmp Comparator) *Content[R, C] {
	rows := ct.rows.Copy(false)
	rows.SortByCoordinate(parallel, cmp)
	return &Content[R, C]{
		rows:        rows,
		cols:        ct.cols,
		columnStore: ct.columnStore,
		arrays:      ct.arrays,
	}
}

// SortedCols is the transposed analogue of SortedRows.
func (ct *Content[R, C]) SortedCols(parallel bool, cmp Comparator) *Content[R, C] {
	cols := ct.cols.Copy(false)
	cols.SortByCoordinate(parallel, cmp)
	return &Content[R, C]{
		rows:        ct.rows,
		cols:        cols,
		columnStore: ct.columnStore,
		arrays:      ct.arrays,
	}
}
