package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/core"
)

func TestCursorUnpositioned(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()

	_, err := cu.Float64()
	require.ErrorIs(t, err, ErrUnpositioned)

	require.NoError(t, cu.Row("r0"))
	_, err = cu.Float64()
	require.ErrorIs(t, err, ErrUnpositioned)

	require.NoError(t, cu.Col("c0"))
	got, err := cu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCursorRepositioning(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()
	require.NoError(t, cu.AtKeys("r1", "c1"))

	got, err := cu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 11.0, got)

	// Moving one axis keeps the other.
	require.NoError(t, cu.RowAt(2))
	got, err = cu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)

	key, err := cu.ColKey()
	require.NoError(t, err)
	assert.Equal(t, "c1", key)

	assert.False(t, cu.TryRow("nope"))
	assert.False(t, cu.TryColAt(9))
}

func TestCursorReselectsArrayInBothLayouts(t *testing.T) {
	rowStore, err := newTestContent(t).CopyAs(false)
	require.NoError(t, err)
	for name, ct := range map[string]*Content[string, string]{
		"column-store": newTestContent(t),
		"row-store":    rowStore,
	} {
		t.Run(name, func(t *testing.T) {
			// The addressed array must follow the cursor regardless of
			// which axis moves last.
			rowFirst := ct.Cursor()
			require.NoError(t, rowFirst.RowAt(1))
			require.NoError(t, rowFirst.ColAt(1))

			colFirst := ct.Cursor()
			require.NoError(t, colFirst.ColAt(1))
			require.NoError(t, colFirst.RowAt(1))

			a, err := rowFirst.Float64()
			require.NoError(t, err)
			b, err := colFirst.Float64()
			require.NoError(t, err)
			assert.Equal(t, 11.0, a)
			assert.Equal(t, 11.0, b)
		})
	}
}

func TestCursorErrorNamesCell(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()
	require.NoError(t, cu.AtKeys("r0", "c0"))

	_, err := cu.Int()
	var cell *CellError
	require.ErrorAs(t, err, &cell)
	assert.Equal(t, "r0", cell.RowKey)
	assert.Equal(t, "c0", cell.ColKey)
	var mismatch *array.ErrTypeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestCursorSurvivesOtherAxisSort(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()
	require.NoError(t, cu.AtKeys("r1", "c0"))

	// Reverse the rows on a sorted view; the cursor belongs to the
	// original content and must keep reading the same cell.
	sorted := ct.SortedRows(false, func(a, b core.Coordinate) int { return int(b - a) })
	require.Equal(t, []string{"r2", "r1", "r0"}, sorted.Rows().KeySlice())

	got, err := cu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	// A cursor on the sorted view sees the new ordinal order but the
	// same coordinates.
	scu := sorted.Cursor()
	require.NoError(t, scu.AtOrdinals(0, 0))
	got, err = scu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)
}

func TestCursorOnFilteredView(t *testing.T) {
	ct := newTestContent(t)
	view, err := ct.FilterRows([]core.Ordinal{2, 0})
	require.NoError(t, err)

	cu := view.Cursor()
	require.NoError(t, cu.AtKeys("r2", "c1"))
	got, err := cu.Float64()
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)

	// Hidden rows are unreachable by key or ordinal.
	assert.False(t, cu.TryRow("r1"))
	assert.False(t, cu.TryRowAt(2))
}

func TestCursorWritesShareStorage(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()
	require.NoError(t, cu.AtKeys("r0", "c1"))
	require.NoError(t, cu.SetFloat64(-5))

	rc, err := ct.RowCoordinateOf("r0")
	require.NoError(t, err)
	cc, err := ct.ColCoordinateOf("c1")
	require.NoError(t, err)
	got, err := ct.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, -5.0, got)
}

func TestCursorCompare(t *testing.T) {
	ct := newTestContent(t)
	a := ct.Cursor()
	b := ct.Cursor()
	require.NoError(t, a.AtKeys("r0", "c0")) // 0
	require.NoError(t, b.AtKeys("r1", "c0")) // 10

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))

	// Null sorts below any value.
	require.NoError(t, b.SetValue(nil))
	assert.Positive(t, a.Compare(b))
}

func TestCursorCopyIsIndependent(t *testing.T) {
	ct := newTestContent(t)
	cu := ct.Cursor()
	require.NoError(t, cu.AtKeys("r0", "c0"))

	cp := cu.Copy()
	require.NoError(t, cp.RowAt(2))

	assert.Equal(t, core.Ordinal(0), cu.RowOrdinal())
	assert.Equal(t, core.Ordinal(2), cp.RowOrdinal())
}
