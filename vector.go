package tabgo

import (
	"iter"
	"math"

	"github.com/hupe1980/tabgo/core"
	"github.com/hupe1980/tabgo/internal/rank"
	"github.com/hupe1980/tabgo/store"
)

// Vector is a cursor-based view of the data at one row or one column.
// All of its operations are built on the cursor contract alone.
//
// A vector owns one cursor for its sequential operations and is not safe
// for concurrent use; parallel scans give every worker its own cursor.
type Vector[R comparable, C comparable] struct {
	table *Table[R, C]
	cur   *store.Cursor[R, C]
	row   bool // view of one row (iterates columns) vs one column (iterates rows)
	size  int
}

// Row returns a vector over the row with the given key.
func (t *Table[R, C]) Row(key R) (*Vector[R, C], error) {
	cur := t.Cursor()
	if err := cur.Row(key); err != nil {
		return nil, translateError(err)
	}
	return &Vector[R, C]{table: t, cur: cur, row: true, size: t.Cols()}, nil
}

// RowAt returns a vector over the row at the given ordinal.
func (t *Table[R, C]) RowAt(ordinal int) (*Vector[R, C], error) {
	cur := t.Cursor()
	if err := cur.RowAt(core.Ordinal(ordinal)); err != nil {
		return nil, translateError(err)
	}
	return &Vector[R, C]{table: t, cur: cur, row: true, size: t.Cols()}, nil
}

// Col returns a vector over the column with the given key.
func (t *Table[R, C]) Col(key C) (*Vector[R, C], error) {
	cur := t.Cursor()
	if err := cur.Col(key); err != nil {
		return nil, translateError(err)
	}
	return &Vector[R, C]{table: t, cur: cur, row: false, size: t.Rows()}, nil
}

// ColAt returns a vector over the column at the given ordinal.
func (t *Table[R, C]) ColAt(ordinal int) (*Vector[R, C], error) {
	cur := t.Cursor()
	if err := cur.ColAt(core.Ordinal(ordinal)); err != nil {
		return nil, translateError(err)
	}
	return &Vector[R, C]{table: t, cur: cur, row: false, size: t.Rows()}, nil
}

// Len returns the number of entries in the vector.
func (v *Vector[R, C]) Len() int { return v.size }

// IsRow reports whether this vector views a row (and iterates columns).
func (v *Vector[R, C]) IsRow() bool { return v.row }

// AtOrdinal re-positions the vector onto another row (for row vectors)
// or column (for column vectors) of the same table.
func (v *Vector[R, C]) AtOrdinal(ordinal int) error {
	if v.row {
		return translateError(v.cur.RowAt(core.Ordinal(ordinal)))
	}
	return translateError(v.cur.ColAt(core.Ordinal(ordinal)))
}

// move advances a cursor along the vector's minor axis.
func (v *Vector[R, C]) move(cur *store.Cursor[R, C], i int) error {
	if v.row {
		return cur.ColAt(core.Ordinal(i))
	}
	return cur.RowAt(core.Ordinal(i))
}

// Value reads the entry at ordinal i; nil when null.
func (v *Vector[R, C]) Value(i int) (any, error) {
	if err := v.move(v.cur, i); err != nil {
		return nil, translateError(err)
	}
	return v.cur.Value(), nil
}

// Float64 reads the float64 entry at ordinal i.
func (v *Vector[R, C]) Float64(i int) (float64, error) {
	if err := v.move(v.cur, i); err != nil {
		return 0, translateError(err)
	}
	f, err := v.cur.Float64()
	return f, translateError(err)
}

// IsNull reports whether the entry at ordinal i is null.
func (v *Vector[R, C]) IsNull(i int) (bool, error) {
	if err := v.move(v.cur, i); err != nil {
		return false, translateError(err)
	}
	return v.cur.IsNull(), nil
}

// ForEach visits every entry in ordinal order. On a parallel table the
// ordinal range is split across the worker pool with one cursor per
// worker, and fn must tolerate concurrent invocation (entries are still
// visited exactly once each).
func (v *Vector[R, C]) ForEach(fn func(i int, val any)) error {
	if v.table.pool == nil {
		cur := v.cur
		for i := 0; i < v.size; i++ {
			if err := v.move(cur, i); err != nil {
				return translateError(err)
			}
			fn(i, cur.Value())
		}
		return nil
	}
	return v.table.pool.Each(v.size, func(lo, hi int) {
		cur := v.cur.Copy()
		for i := lo; i < hi; i++ {
			if v.move(cur, i) != nil {
				return
			}
			fn(i, cur.Value())
		}
	})
}

// Values returns a lazy, single-pass iterator over (ordinal, value).
// Re-iterating requires a fresh call.
func (v *Vector[R, C]) Values() iter.Seq2[int, any] {
	cur := v.cur.Copy()
	return func(yield func(int, any) bool) {
		for i := 0; i < v.size; i++ {
			if v.move(cur, i) != nil {
				return
			}
			if !yield(i, cur.Value()) {
				return
			}
		}
	}
}

// Where returns a lazy, single-pass iterator over the entries matching
// pred.
func (v *Vector[R, C]) Where(pred func(val any) bool) iter.Seq2[int, any] {
	cur := v.cur.Copy()
	return func(yield func(int, any) bool) {
		for i := 0; i < v.size; i++ {
			if v.move(cur, i) != nil {
				return
			}
			val := cur.Value()
			if !pred(val) {
				continue
			}
			if !yield(i, val) {
				return
			}
		}
	}
}

// First scans forward and returns the first entry matching pred.
func (v *Vector[R, C]) First(pred func(val any) bool) (int, any, bool) {
	cur := v.cur.Copy()
	for i := 0; i < v.size; i++ {
		if v.move(cur, i) != nil {
			return -1, nil, false
		}
		if val := cur.Value(); pred(val) {
			return i, val, true
		}
	}
	return -1, nil, false
}

// Last scans backward and returns the last entry matching pred.
func (v *Vector[R, C]) Last(pred func(val any) bool) (int, any, bool) {
	cur := v.cur.Copy()
	for i := v.size - 1; i >= 0; i-- {
		if v.move(cur, i) != nil {
			return -1, nil, false
		}
		if val := cur.Value(); pred(val) {
			return i, val, true
		}
	}
	return -1, nil, false
}

// NotNull matches entries holding a value; it is the default predicate
// of the min/max/bounds scans.
func NotNull(val any) bool { return val != nil }

// Min returns a cursor at the smallest entry matching pred (nil means
// NotNull), under the cursor's natural comparison.
func (v *Vector[R, C]) Min(pred func(val any) bool) (*store.Cursor[R, C], bool) {
	return v.scanExtreme(pred, func(cand, best *store.Cursor[R, C]) bool {
		return cand.Compare(best) < 0
	})
}

// Max returns a cursor at the largest entry matching pred (nil means
// NotNull), under the cursor's natural comparison.
func (v *Vector[R, C]) Max(pred func(val any) bool) (*store.Cursor[R, C], bool) {
	return v.scanExtreme(pred, func(cand, best *store.Cursor[R, C]) bool {
		return cand.Compare(best) > 0
	})
}

// MinFunc is Min with a caller-supplied comparator over boxed values.
func (v *Vector[R, C]) MinFunc(cmp func(a, b any) int) (*store.Cursor[R, C], bool) {
	return v.scanExtreme(nil, func(cand, best *store.Cursor[R, C]) bool {
		return cmp(cand.Value(), best.Value()) < 0
	})
}

// MaxFunc is Max with a caller-supplied comparator over boxed values.
func (v *Vector[R, C]) MaxFunc(cmp func(a, b any) int) (*store.Cursor[R, C], bool) {
	return v.scanExtreme(nil, func(cand, best *store.Cursor[R, C]) bool {
		return cmp(cand.Value(), best.Value()) > 0
	})
}

// scanExtreme finds the first match as the anchor, then keeps the
// scanning cursor distinct from the "current best" cursor so later
// matches can be compared in place.
func (v *Vector[R, C]) scanExtreme(pred func(val any) bool, better func(cand, best *store.Cursor[R, C]) bool) (*store.Cursor[R, C], bool) {
	if pred == nil {
		pred = NotNull
	}
	cur := v.cur.Copy()
	var best *store.Cursor[R, C]
	for i := 0; i < v.size; i++ {
		if v.move(cur, i) != nil {
			break
		}
		if !pred(cur.Value()) {
			continue
		}
		if best == nil || better(cur, best) {
			best = cur.Copy()
		}
	}
	return best, best != nil
}

// Bounds produces both min and max cursors in a single pass.
func (v *Vector[R, C]) Bounds(pred func(val any) bool) (minCur, maxCur *store.Cursor[R, C], ok bool) {
	if pred == nil {
		pred = NotNull
	}
	cur := v.cur.Copy()
	for i := 0; i < v.size; i++ {
		if v.move(cur, i) != nil {
			break
		}
		if !pred(cur.Value()) {
			continue
		}
		if minCur == nil {
			minCur, maxCur = cur.Copy(), cur.Copy()
			continue
		}
		if cur.Compare(minCur) < 0 {
			minCur = cur.Copy()
		}
		if cur.Compare(maxCur) > 0 {
			maxCur = cur.Copy()
		}
	}
	return minCur, maxCur, minCur != nil
}

// Float64Values extracts every entry as float64, in strict ordinal
// order. Null and non-numeric entries come out as NaN.
func (v *Vector[R, C]) Float64Values() []float64 {
	out := make([]float64, v.size)
	cur := v.cur.Copy()
	for i := 0; i < v.size; i++ {
		if v.move(cur, i) != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = toFloat64(cur.Value())
	}
	return out
}

// Rank delegates to the ranking routine over the vector's float64 values
// (extracted in strict ordinal order) and returns a fresh single-column
// table indexed by this vector's ordinals. Ties share the average rank.
func (v *Vector[R, C]) Rank() (*Table[int, string], error) {
	ranks := rank.Natural(v.Float64Values())
	rowKeys := make([]int, len(ranks))
	for i := range rowKeys {
		rowKeys[i] = i
	}
	out, err := New(rowKeys, []string{"rank"}, KindFloat64)
	if err != nil {
		return nil, err
	}
	for i, r := range ranks {
		if err := out.SetFloat64(i, "rank", r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// toFloat64 coerces numeric cell values; everything else becomes NaN.
func toFloat64(val any) float64 {
	switch x := val.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return math.NaN()
	}
}
