package store

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabgo/core"
)

// FilterRows returns a zero-copy view presenting only the rows at the
// given ordinals, in that order. The column axis and the backing arrays
// are shared; retained rows keep their physical coordinates.
func (ct *Content[R, C]) FilterRows(ordinals []core.Ordinal) (*Content[R, C], error) {
	rows, err := ct.rows.Filter(ordinals)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: rows, cols: ct.cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// FilterRowKeys returns a zero-copy view presenting exactly the given
// row keys, in the given order.
func (ct *Content[R, C]) FilterRowKeys(keys []R) (*Content[R, C], error) {
	rows, err := ct.rows.FilterKeys(keys)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: rows, cols: ct.cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// FilterRowBitmap returns a zero-copy view over the row ordinals set in
// rb, in ascending ordinal order.
func (ct *Content[R, C]) FilterRowBitmap(rb *roaring.Bitmap) (*Content[R, C], error) {
	rows, err := ct.rows.FilterBitmap(rb)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: rows, cols: ct.cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// FilterCols returns a zero-copy view presenting only the columns at the
// given ordinals, in that order.
func (ct *Content[R, C]) FilterCols(ordinals []core.Ordinal) (*Content[R, C], error) {
	cols, err := ct.cols.Filter(ordinals)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: ct.rows, cols: cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// FilterColKeys returns a zero-copy view presenting exactly the given
// column keys, in the given order.
func (ct *Content[R, C]) FilterColKeys(keys []C) (*Content[R, C], error) {
	cols, err := ct.cols.FilterKeys(keys)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: ct.rows, cols: cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// MapRowKeys returns a shallow view whose row keys are rewritten through
// f; coordinates, ordinal order and the backing arrays are untouched.
func (ct *Content[R, C]) MapRowKeys(f func(R) R) (*Content[R, C], error) {
	rows, err := ct.rows.Remap(f)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: rows, cols: ct.cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}

// MapColKeys returns a shallow view whose column keys are rewritten
// through f.
func (ct *Content[R, C]) MapColKeys(f func(C) C) (*Content[R, C], error) {
	cols, err := ct.cols.Remap(f)
	if err != nil {
		return nil, err
	}
	return &Content[R, C]{rows: ct.rows, cols: cols, columnStore: ct.columnStore, arrays: ct.arrays}, nil
}
