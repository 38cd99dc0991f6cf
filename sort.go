package tabgo

import (
	"github.com/hupe1980/tabgo/store"
)

// SortRows returns a view with rows reordered by the given columns, in
// precedence order; with no columns, rows are ordered by their keys.
// Equal runs keep their previous relative order, so chained sorts
// compose. Backing arrays are shared; only the row axis mapping changes.
func (t *Table[R, C]) SortRows(ascending bool, colKeys ...C) (*Table[R, C], error) {
	multiplier := 1
	if !ascending {
		multiplier = -1
	}
	var cmp store.Comparator
	var err error
	if len(colKeys) == 0 {
		cmp, err = t.content.RowKeyComparator(multiplier)
	} else {
		cmp, err = t.content.RowComparator(colKeys, multiplier)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return t.sortedRows(cmp), nil
}

// SortRowsBy returns a view with rows reordered by a caller-supplied
// coordinate comparator, for orderings the per-column sorts cannot
// express. Compose and reverse comparators with store.Composite and
// Comparator.Reverse.
func (t *Table[R, C]) SortRowsBy(cmp store.Comparator) *Table[R, C] {
	return t.sortedRows(cmp)
}

// SortCols is SortRows transposed: columns reordered by the values in
// the given rows, or by their own keys when no rows are given.
func (t *Table[R, C]) SortCols(ascending bool, rowKeys ...R) (*Table[R, C], error) {
	multiplier := 1
	if !ascending {
		multiplier = -1
	}
	var cmp store.Comparator
	var err error
	if len(rowKeys) == 0 {
		cmp, err = t.content.ColKeyComparator(multiplier)
	} else {
		cmp, err = t.content.ColComparator(rowKeys, multiplier)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return t.sortedCols(cmp), nil
}

// SortColsBy returns a view with columns reordered by a caller-supplied
// coordinate comparator.
func (t *Table[R, C]) SortColsBy(cmp store.Comparator) *Table[R, C] {
	return t.sortedCols(cmp)
}

// ResetRowOrder returns a view with rows back in insertion order. A nil
// comparator asks the axis copy for its coordinate-ascending ordering.
func (t *Table[R, C]) ResetRowOrder() *Table[R, C] {
	return t.sortedRows(nil)
}

// ResetColOrder returns a view with columns back in insertion order.
func (t *Table[R, C]) ResetColOrder() *Table[R, C] {
	return t.sortedCols(nil)
}

func (t *Table[R, C]) sortedRows(cmp store.Comparator) *Table[R, C] {
	t.opts.metrics.RecordSort(t.Rows())
	t.opts.logger.Debug("sorting rows", "rows", t.Rows(), "parallel", t.pool != nil)
	return t.derive(t.content.SortedRows(t.pool != nil, cmp))
}

func (t *Table[R, C]) sortedCols(cmp store.Comparator) *Table[R, C] {
	t.opts.metrics.RecordSort(t.Cols())
	t.opts.logger.Debug("sorting cols", "cols", t.Cols(), "parallel", t.pool != nil)
	return t.derive(t.content.SortedCols(t.pool != nil, cmp))
}
