// Package tabgo provides an embedded, in-memory tabular data engine for Go.
//
// A Table is a two-dimensional grid addressable by typed row and column
// keys. Cells live in typed backing arrays; the layout (column-store or
// row-store) is a flag, so transposing is O(1) and never copies data.
// Sorting and filtering produce lightweight views that share the same
// backing arrays with the source table.
//
// # Quick Start
//
//	t, _ := tabgo.New([]string{"AAPL", "MSFT"}, []string{"open", "close"}, tabgo.KindFloat64)
//	_ = t.SetFloat64("AAPL", "open", 182.5)
//	v, _ := t.Float64("AAPL", "open")
//
// # Views
//
// Derived tables are views, not copies:
//
//	sorted, _ := t.SortRows(true, "close")     // rows reordered, arrays shared
//	subset, _ := t.SelectRows("AAPL")
//	flipped := tabgo.Transpose(t)              // axes swapped, O(1)
//
// Coordinates are stable: a cursor positioned on a cell keeps reading
// the same cell no matter how the other axis is filtered or sorted.
// Call Copy to detach a view into compact, independent storage.
//
// # Cursors and Vectors
//
// A Cursor addresses one cell and re-positions in O(1); a Vector views
// one row or column and builds scans, iterators, and min/max searches
// on top of the cursor contract:
//
//	vec, _ := t.Col("close")
//	maxCur, ok := vec.Max(nil)
//	for i, val := range vec.Values() { ... }
//
// # Persistence
//
// Tables serialize to a compact binary format, optionally zstd- or
// lz4-compressed:
//
//	_ = t.SaveFile("prices.tab")
//	t2, _ := tabgo.OpenFile[string, string]("prices.tab")
//
// # Concurrency
//
// Reads through distinct cursors are safe concurrently. Structural
// mutation (adding rows or columns, writing cells) must be serialized
// by the caller. WithParallel enables a worker pool for sorts and
// vector scans on large tables.
package tabgo
