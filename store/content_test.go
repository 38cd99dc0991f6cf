package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/core"
)

func newTestContent(t *testing.T) *Content[string, string] {
	t.Helper()
	ct, err := New([]string{"r0", "r1", "r2"}, []string{"c0", "c1"}, array.KindFloat64, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			rc, err := ct.RowCoordinateAt(core.Ordinal(i))
			require.NoError(t, err)
			cc, err := ct.ColCoordinateAt(core.Ordinal(j))
			require.NoError(t, err)
			require.NoError(t, ct.SetFloat64At(rc, cc, float64(i*10+j)))
		}
	}
	return ct
}

func TestNewContent(t *testing.T) {
	ct := newTestContent(t)
	assert.Equal(t, 3, ct.RowCount())
	assert.Equal(t, 2, ct.ColCount())
	assert.True(t, ct.IsColumnStore())
	assert.Len(t, ct.Arrays(), 2)
}

func TestCellAccess(t *testing.T) {
	ct := newTestContent(t)
	rc, err := ct.RowCoordinateOf("r2")
	require.NoError(t, err)
	cc, err := ct.ColCoordinateOf("c1")
	require.NoError(t, err)

	got, err := ct.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)

	_, err = ct.IntAt(rc, cc)
	var mismatch *array.ErrTypeMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestTransposeIsFreeAndShared(t *testing.T) {
	ct := newTestContent(t)
	tr := Transpose(ct)

	assert.Equal(t, 2, tr.RowCount())
	assert.Equal(t, 3, tr.ColCount())
	assert.False(t, tr.IsColumnStore())

	// Same backing arrays, flipped meaning.
	rc, err := tr.RowCoordinateOf("c1")
	require.NoError(t, err)
	cc, err := tr.ColCoordinateOf("r2")
	require.NoError(t, err)
	got, err := tr.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)

	// Writes through the transpose land in the original.
	require.NoError(t, tr.SetFloat64At(rc, cc, -1))
	orc, err := ct.RowCoordinateOf("r2")
	require.NoError(t, err)
	occ, err := ct.ColCoordinateOf("c1")
	require.NoError(t, err)
	got, err = ct.Float64At(orc, occ)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)

	// Transposing twice restores the original orientation.
	assert.True(t, Transpose(tr).Equal(ct))
}

func TestAddRowGrowsAmortized(t *testing.T) {
	ct, err := New([]string{"r0"}, []string{"c0"}, array.KindInt64, 0)
	require.NoError(t, err)

	expansions := 0
	for i := 1; i < 100; i++ {
		added, expanded, err := ct.AddRow(fmt.Sprintf("row%d", i), axis.RejectDuplicates)
		require.NoError(t, err)
		require.True(t, added)
		if expanded {
			expansions++
		}
	}
	assert.Equal(t, 100, ct.RowCount())
	assert.GreaterOrEqual(t, ct.RowCapacity(), 100)
	// 1.5x growth keeps expansions logarithmic in row count.
	assert.Less(t, expansions, 15)
}

func TestAddRowsNewSlotsAreNull(t *testing.T) {
	ct := newTestContent(t)
	added, _, err := ct.AddRows([]string{"r3", "r1"}, axis.IgnoreDuplicates)
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, added)

	rc, err := ct.RowCoordinateOf("r3")
	require.NoError(t, err)
	cc, err := ct.ColCoordinateOf("c0")
	require.NoError(t, err)
	assert.True(t, ct.IsNullAt(rc, cc))

	// Existing cells are untouched by growth.
	orc, err := ct.RowCoordinateOf("r0")
	require.NoError(t, err)
	got, err := ct.Float64At(orc, cc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestAddColumn(t *testing.T) {
	ct := newTestContent(t)
	added, err := ct.AddColumn("c2", array.MustOf([]float64{7, 8, 9}), axis.RejectDuplicates)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 3, ct.ColCount())

	rc, err := ct.RowCoordinateOf("r1")
	require.NoError(t, err)
	cc, err := ct.ColCoordinateOf("c2")
	require.NoError(t, err)
	got, err := ct.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)
}

func TestAddColumnRequiresColumnStore(t *testing.T) {
	tr := Transpose(newTestContent(t))
	_, _, err := tr.AddRow("c9", axis.RejectDuplicates)
	require.ErrorIs(t, err, ErrNotColumnStore)
}

func TestEqual(t *testing.T) {
	a := newTestContent(t)
	b := newTestContent(t)
	assert.True(t, a.Equal(b))

	rc, err := b.RowCoordinateOf("r0")
	require.NoError(t, err)
	cc, err := b.ColCoordinateOf("c0")
	require.NoError(t, err)
	require.NoError(t, b.SetFloat64At(rc, cc, 999))
	assert.False(t, a.Equal(b))
}

func TestCopyDetaches(t *testing.T) {
	a := newTestContent(t)
	b := a.Copy()
	require.True(t, a.Equal(b))

	rc, err := b.RowCoordinateOf("r0")
	require.NoError(t, err)
	cc, err := b.ColCoordinateOf("c0")
	require.NoError(t, err)
	require.NoError(t, b.SetFloat64At(rc, cc, 999))

	orig, err := a.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, orig)
}

func TestCopyOfFilterCompacts(t *testing.T) {
	a := newTestContent(t)
	view, err := a.FilterRows([]core.Ordinal{2, 0})
	require.NoError(t, err)
	require.True(t, view.Rows().IsFilter())

	compact := view.Copy()
	assert.False(t, compact.Rows().IsFilter())
	assert.Equal(t, 2, compact.RowCount())
	assert.Equal(t, []string{"r2", "r0"}, compact.Rows().KeySlice())

	rc, err := compact.RowCoordinateOf("r2")
	require.NoError(t, err)
	cc, err := compact.ColCoordinateOf("c1")
	require.NoError(t, err)
	got, err := compact.Float64At(rc, cc)
	require.NoError(t, err)
	assert.Equal(t, 21.0, got)
}

func TestCopyAsFlipsLayout(t *testing.T) {
	a := newTestContent(t)
	rowStore, err := a.CopyAs(false)
	require.NoError(t, err)

	assert.False(t, rowStore.IsColumnStore())
	assert.True(t, a.Equal(rowStore))
	assert.Len(t, rowStore.Arrays(), 3)
}
