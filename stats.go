package tabgo

import (
	"fmt"
	"math"
)

// SMA computes the simple moving average of every column over a sliding
// window of the given size. The result is a fresh float64 table with
// rows-window+1 rows keyed by window start ordinal, keeping this
// table's column keys. NaN inputs (including nulls) poison the windows
// they fall in.
func (t *Table[R, C]) SMA(window int) (*Table[int, C], error) {
	rows := t.Rows()
	if window < 1 || window > rows {
		return nil, fmt.Errorf("%w: window %d for %d rows", ErrInvalidWindow, window, rows)
	}
	outRows := rows - window + 1
	rowKeys := make([]int, outRows)
	for i := range rowKeys {
		rowKeys[i] = i
	}
	out, err := New(rowKeys, t.ColKeys(), KindFloat64)
	if err != nil {
		return nil, err
	}
	for _, colKey := range t.ColKeys() {
		vec, err := t.Col(colKey)
		if err != nil {
			return nil, err
		}
		values := vec.Float64Values()
		// Running sum with a NaN counter, so leaving the window
		// restores a clean sum instead of a poisoned one.
		var sum float64
		var nans int
		for i, v := range values {
			if math.IsNaN(v) {
				nans++
			} else {
				sum += v
			}
			if i >= window {
				if prev := values[i-window]; math.IsNaN(prev) {
					nans--
				} else {
					sum -= prev
				}
			}
			if i < window-1 {
				continue
			}
			avg := sum / float64(window)
			if nans > 0 {
				avg = math.NaN()
			}
			if err := out.SetFloat64(i-window+1, colKey, avg); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
