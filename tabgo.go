package tabgo

import (
	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/core"
	"github.com/hupe1980/tabgo/internal/pool"
	"github.com/hupe1980/tabgo/store"
)

// Kind identifies the element type of a backing array.
type Kind = array.Kind

// Element kinds, re-exported for call sites that only import the root
// package.
const (
	KindBool    = array.KindBool
	KindInt     = array.KindInt
	KindInt32   = array.KindInt32
	KindInt64   = array.KindInt64
	KindFloat32 = array.KindFloat32
	KindFloat64 = array.KindFloat64
	KindString  = array.KindString
	KindTime    = array.KindTime
	KindAny     = array.KindAny
)

// ChangeListener is notified after structural changes succeed, with the
// newly added keys.
type ChangeListener[R comparable, C comparable] interface {
	OnRowsAdded(keys []R)
	OnColumnAdded(key C)
}

// Table is a two-dimensional, in-memory table addressable by row and
// column keys. Data lives in typed backing arrays whose layout
// (column-store or row-store) can be flipped without copying; sorting
// and filtering produce derived views that share the same arrays.
//
// Reads through distinct cursors are safe concurrently; structural
// mutation must be externally serialized.
type Table[R comparable, C comparable] struct {
	content   *store.Content[R, C]
	opts      *options
	pool      *pool.Pool
	listeners []ChangeListener[R, C]
}

// New creates an empty column-store table with the given key sets and a
// uniform element kind.
func New[R comparable, C comparable](rowKeys []R, colKeys []C, kind array.Kind, opts ...Option) (*Table[R, C], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	content, err := store.New[R, C](rowKeys, colKeys, kind, o.capacity)
	if err != nil {
		return nil, translateError(err)
	}
	t := &Table[R, C]{content: content, opts: o}
	if o.workers != 0 {
		t.pool = pool.New(o.workers)
	}
	return t, nil
}

// derive wraps a new content in a table sharing this table's options,
// worker pool and listeners.
func (t *Table[R, C]) derive(content *store.Content[R, C]) *Table[R, C] {
	return &Table[R, C]{content: content, opts: t.opts, pool: t.pool, listeners: t.listeners}
}

// Content exposes the underlying content store for collaborators built
// on the cursor and coordinate contracts.
func (t *Table[R, C]) Content() *store.Content[R, C] { return t.content }

// Rows returns the logical row count.
func (t *Table[R, C]) Rows() int { return t.content.RowCount() }

// Cols returns the logical column count.
func (t *Table[R, C]) Cols() int { return t.content.ColCount() }

// RowKeys returns the row keys in current ordinal order.
func (t *Table[R, C]) RowKeys() []R { return t.content.Rows().KeySlice() }

// ColKeys returns the column keys in current ordinal order.
func (t *Table[R, C]) ColKeys() []C { return t.content.Cols().KeySlice() }

// HasRow reports whether a row key is present.
func (t *Table[R, C]) HasRow(key R) bool { return t.content.Rows().Contains(key) }

// HasCol reports whether a column key is present.
func (t *Table[R, C]) HasCol(key C) bool { return t.content.Cols().Contains(key) }

// IsColumnStore reports whether the backing arrays represent columns.
func (t *Table[R, C]) IsColumnStore() bool { return t.content.IsColumnStore() }

// RowCapacity returns the backing length available to rows.
func (t *Table[R, C]) RowCapacity() int { return t.content.RowCapacity() }

// IsView reports whether either axis is a filter over another table.
func (t *Table[R, C]) IsView() bool {
	return t.content.Rows().IsFilter() || t.content.Cols().IsFilter()
}

// Cursor returns a fresh, unpositioned cursor. One logical traversal =
// one cursor instance.
func (t *Table[R, C]) Cursor() *store.Cursor[R, C] { return t.content.Cursor() }

func (t *Table[R, C]) coords(row R, col C) (core.Coordinate, core.Coordinate, error) {
	rc, err := t.content.RowCoordinateOf(row)
	if err != nil {
		return 0, 0, translateError(err)
	}
	cc, err := t.content.ColCoordinateOf(col)
	if err != nil {
		return 0, 0, translateError(err)
	}
	return rc, cc, nil
}

// Value reads the cell at (row, col); nil when null.
func (t *Table[R, C]) Value(row R, col C) (any, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return nil, err
	}
	return t.content.ValueAt(rc, cc), nil
}

// SetValue writes the cell at (row, col); nil marks it null.
func (t *Table[R, C]) SetValue(row R, col C, v any) error {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return err
	}
	return translateError(t.content.SetValueAt(rc, cc, v))
}

// Bool reads the bool cell at (row, col).
func (t *Table[R, C]) Bool(row R, col C) (bool, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return false, err
	}
	v, err := t.content.BoolAt(rc, cc)
	return v, translateError(err)
}

// SetBool writes the bool cell at (row, col).
func (t *Table[R, C]) SetBool(row R, col C, v bool) error {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return err
	}
	return translateError(t.content.SetBoolAt(rc, cc, v))
}

// Int reads the int cell at (row, col).
func (t *Table[R, C]) Int(row R, col C) (int, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return 0, err
	}
	v, err := t.content.IntAt(rc, cc)
	return v, translateError(err)
}

// SetInt writes the int cell at (row, col).
func (t *Table[R, C]) SetInt(row R, col C, v int) error {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return err
	}
	return translateError(t.content.SetIntAt(rc, cc, v))
}

// Int64 reads the int64 cell at (row, col).
func (t *Table[R, C]) Int64(row R, col C) (int64, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return 0, err
	}
	v, err := t.content.Int64At(rc, cc)
	return v, translateError(err)
}

// SetInt64 writes the int64 cell at (row, col).
func (t *Table[R, C]) SetInt64(row R, col C, v int64) error {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return err
	}
	return translateError(t.content.SetInt64At(rc, cc, v))
}

// Float64 reads the float64 cell at (row, col).
func (t *Table[R, C]) Float64(row R, col C) (float64, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return 0, err
	}
	v, err := t.content.Float64At(rc, cc)
	return v, translateError(err)
}

// SetFloat64 writes the float64 cell at (row, col).
func (t *Table[R, C]) SetFloat64(row R, col C, v float64) error {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return err
	}
	return translateError(t.content.SetFloat64At(rc, cc, v))
}

// ValueAt reads the cell at logical ordinals.
func (t *Table[R, C]) ValueAt(rowOrd, colOrd int) (any, error) {
	rc, err := t.content.RowCoordinateAt(core.Ordinal(rowOrd))
	if err != nil {
		return nil, translateError(err)
	}
	cc, err := t.content.ColCoordinateAt(core.Ordinal(colOrd))
	if err != nil {
		return nil, translateError(err)
	}
	return t.content.ValueAt(rc, cc), nil
}

// IsNull reports whether the cell at (row, col) is null.
func (t *Table[R, C]) IsNull(row R, col C) (bool, error) {
	rc, cc, err := t.coords(row, col)
	if err != nil {
		return false, err
	}
	return t.content.IsNullAt(rc, cc), nil
}

// AddRow appends a row key. Only legal on a column-store, non-view table.
func (t *Table[R, C]) AddRow(key R) (bool, error) {
	added, expanded, err := t.content.AddRow(key, t.opts.policy)
	if err != nil {
		return added, translateError(err)
	}
	if expanded {
		t.opts.metrics.RecordExpand(t.content.RowCapacity())
	}
	if added {
		t.opts.logger.Debug("row added", "rows", t.content.RowCount())
		for _, l := range t.listeners {
			l.OnRowsAdded([]R{key})
		}
	}
	return added, nil
}

// AddRows appends a batch of row keys, growing capacity once. It returns
// the keys actually added.
func (t *Table[R, C]) AddRows(keys []R) ([]R, error) {
	added, expanded, err := t.content.AddRows(keys, t.opts.policy)
	if expanded {
		t.opts.metrics.RecordExpand(t.content.RowCapacity())
	}
	if len(added) > 0 {
		t.opts.logger.Debug("rows added", "count", len(added), "rows", t.content.RowCount())
		for _, l := range t.listeners {
			l.OnRowsAdded(added)
		}
	}
	return added, translateError(err)
}

// AddColumn appends a column. values may be an array.Array or a plain Go
// slice ([]float64, []int, []string, ...); it is expanded to the current
// row capacity and backfilled in row coordinate order.
func (t *Table[R, C]) AddColumn(key C, values any) (bool, error) {
	arr, ok := values.(array.Array)
	if !ok {
		var err error
		if arr, err = array.Of(values); err != nil {
			return false, translateError(err)
		}
	}
	added, err := t.content.AddColumn(key, arr, t.opts.policy)
	if err != nil {
		return added, translateError(err)
	}
	if added {
		t.opts.logger.Debug("column added", "cols", t.content.ColCount())
		for _, l := range t.listeners {
			l.OnColumnAdded(key)
		}
	}
	return added, nil
}

// Subscribe registers a listener for structural changes.
func (t *Table[R, C]) Subscribe(l ChangeListener[R, C]) {
	t.listeners = append(t.listeners, l)
}

// Transpose returns a table with row and column axes swapped. The
// backing arrays are shared; no data is copied, and transposing twice
// yields the original mapping.
func Transpose[R comparable, C comparable](t *Table[R, C]) *Table[C, R] {
	return &Table[C, R]{
		content: store.Transpose(t.content),
		opts:    t.opts,
		pool:    t.pool,
	}
}

// Copy returns a deep copy. Views are compacted: only visible
// coordinates are materialized and the result stops being a view.
func (t *Table[R, C]) Copy() *Table[R, C] {
	return t.derive(t.content.Copy())
}

// CopyAs returns a deep copy in the requested layout.
func (t *Table[R, C]) CopyAs(columnStore bool) (*Table[R, C], error) {
	content, err := t.content.CopyAs(columnStore)
	if err != nil {
		return nil, translateError(err)
	}
	return t.derive(content), nil
}

// Equal reports whether both tables present the same (row, col) → value
// mapping with identical key order.
func (t *Table[R, C]) Equal(other *Table[R, C]) bool {
	return t.content.Equal(other.content)
}

// SelectRows returns a zero-copy view presenting exactly the given row
// keys, in the given order. Retained rows keep their physical
// coordinates.
func (t *Table[R, C]) SelectRows(keys ...R) (*Table[R, C], error) {
	content, err := t.content.FilterRowKeys(keys)
	if err != nil {
		return nil, translateError(err)
	}
	return t.derive(content), nil
}

// SelectCols returns a zero-copy view presenting exactly the given
// column keys, in the given order.
func (t *Table[R, C]) SelectCols(keys ...C) (*Table[R, C], error) {
	content, err := t.content.FilterColKeys(keys)
	if err != nil {
		return nil, translateError(err)
	}
	return t.derive(content), nil
}

// FilterRows returns a zero-copy view keeping the rows for which pred
// returns true. The predicate receives each row's key and a vector over
// its cells; retained rows keep their physical coordinates and relative
// order.
func (t *Table[R, C]) FilterRows(pred func(key R, row *Vector[R, C]) bool) (*Table[R, C], error) {
	keys := t.RowKeys()
	kept := make([]R, 0, len(keys))
	for i, key := range keys {
		row, err := t.RowAt(i)
		if err != nil {
			return nil, err
		}
		if pred(key, row) {
			kept = append(kept, key)
		}
	}
	return t.SelectRows(kept...)
}

// FilterCols returns a zero-copy view keeping the columns for which pred
// returns true.
func (t *Table[R, C]) FilterCols(pred func(key C, col *Vector[R, C]) bool) (*Table[R, C], error) {
	keys := t.ColKeys()
	kept := make([]C, 0, len(keys))
	for i, key := range keys {
		col, err := t.ColAt(i)
		if err != nil {
			return nil, err
		}
		if pred(key, col) {
			kept = append(kept, key)
		}
	}
	return t.SelectCols(kept...)
}

// MapRowKeys returns a shallow view with row keys rewritten through f.
func (t *Table[R, C]) MapRowKeys(f func(R) R) (*Table[R, C], error) {
	content, err := t.content.MapRowKeys(f)
	if err != nil {
		return nil, translateError(err)
	}
	return t.derive(content), nil
}

// MapColKeys returns a shallow view with column keys rewritten through f.
func (t *Table[R, C]) MapColKeys(f func(C) C) (*Table[R, C], error) {
	content, err := t.content.MapColKeys(f)
	if err != nil {
		return nil, translateError(err)
	}
	return t.derive(content), nil
}

// DuplicatePolicy returns the policy applied to structural adds.
func (t *Table[R, C]) DuplicatePolicy() axis.DuplicatePolicy { return t.opts.policy }

// Close releases the worker pool of a parallel table. Serial tables need
// no Close. Derived views share the pool; close only the table that
// created it.
func (t *Table[R, C]) Close() {
	if t.pool != nil {
		t.pool.Close()
	}
}
