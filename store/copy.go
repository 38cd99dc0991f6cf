package store

import (
	"math"
	"reflect"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/core"
)

// Copy returns a deep copy.
//
// When either axis is a filter the copy is compacted: only the visible
// coordinates are materialized, in current ordinal order, into freshly
// allocated arrays, and the result carries owner (non-filter) axes.
// Otherwise every backing array and both axes are cloned outright.
func (ct *Content[R, C]) Copy() *Content[R, C] {
	if ct.rows.IsFilter() || ct.cols.IsFilter() {
		return ct.compactCopy()
	}
	arrays := make([]array.Array, len(ct.arrays))
	for i, a := range ct.arrays {
		arrays[i] = a.Copy()
	}
	return &Content[R, C]{
		rows:        ct.rows.Copy(false),
		cols:        ct.cols.Copy(false),
		columnStore: ct.columnStore,
		arrays:      arrays,
	}
}

// compactCopy materializes the visible view into a filter-free content.
// The subset copy runs in ordinal order, so the compacted coordinates
// equal the view's ordinals.
func (ct *Content[R, C]) compactCopy() *Content[R, C] {
	rows := axis.MustNew(ct.rows.KeySlice())
	cols := axis.MustNew(ct.cols.KeySlice())

	var (
		major []core.Coordinate // picks which arrays survive, in order
		minor []core.Coordinate // slots copied out of each survivor
	)
	if ct.columnStore {
		major = ct.cols.CoordinateSlice()
		minor = ct.rows.CoordinateSlice()
		rows.Reserve(len(minor))
	} else {
		major = ct.rows.CoordinateSlice()
		minor = ct.cols.CoordinateSlice()
	}
	arrays := make([]array.Array, len(major))
	for i, m := range major {
		arrays[i] = ct.arrays[m].CopySubset(minor)
	}
	return &Content[R, C]{
		rows:        rows,
		cols:        cols,
		columnStore: ct.columnStore,
		arrays:      arrays,
	}
}

// CopyAs returns a deep copy in the requested layout. When the layout
// differs from the current one, every (row, col) cell is visited once
// with kind-dispatched transfer so primitive cells move without boxing.
func (ct *Content[R, C]) CopyAs(columnStore bool) (*Content[R, C], error) {
	if columnStore == ct.columnStore {
		return ct.Copy(), nil
	}
	rows := axis.MustNew(ct.rows.KeySlice())
	cols := axis.MustNew(ct.cols.KeySlice())
	rowCoords := ct.rows.CoordinateSlice()
	colCoords := ct.cols.CoordinateSlice()

	kind := ct.uniformKind()
	var count, slots int
	if columnStore {
		count, slots = len(colCoords), len(rowCoords)
		rows.Reserve(slots)
	} else {
		count, slots = len(rowCoords), len(colCoords)
	}
	arrays := make([]array.Array, count)
	for i := range arrays {
		a, err := array.New(kind, slots)
		if err != nil {
			return nil, err
		}
		arrays[i] = a
	}
	out := &Content[R, C]{
		rows:        rows,
		cols:        cols,
		columnStore: columnStore,
		arrays:      arrays,
	}

	for i, rc := range rowCoords {
		for j, cc := range colCoords {
			if ct.IsNullAt(rc, cc) {
				continue
			}
			dr, dc := core.Coordinate(i), core.Coordinate(j)
			var err error
			switch kind {
			case array.KindBool:
				var v bool
				if v, err = ct.BoolAt(rc, cc); err == nil {
					err = out.SetBoolAt(dr, dc, v)
				}
			case array.KindInt:
				var v int
				if v, err = ct.IntAt(rc, cc); err == nil {
					err = out.SetIntAt(dr, dc, v)
				}
			case array.KindInt64:
				var v int64
				if v, err = ct.Int64At(rc, cc); err == nil {
					err = out.SetInt64At(dr, dc, v)
				}
			case array.KindFloat64:
				var v float64
				if v, err = ct.Float64At(rc, cc); err == nil {
					err = out.SetFloat64At(dr, dc, v)
				}
			default:
				err = out.SetValueAt(dr, dc, ct.ValueAt(rc, cc))
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// uniformKind returns the shared element kind of all backing arrays, or
// KindAny for mixed-kind contents.
func (ct *Content[R, C]) uniformKind() array.Kind {
	if len(ct.arrays) == 0 {
		return array.KindAny
	}
	kind := ct.arrays[0].Kind()
	for _, a := range ct.arrays[1:] {
		if a.Kind() != kind {
			return array.KindAny
		}
	}
	return kind
}

// valueEqual compares boxed cell values for equality; NaN equals NaN so
// that copies of float tables verify as equal.
func valueEqual(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok && math.IsNaN(af) && math.IsNaN(bf) {
		return true
	}
	return reflect.DeepEqual(a, b)
}
