package tabgo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	tbl := newSeriesTable(t, []float64{1, 2, 3, 4, 5})
	out, err := tbl.SMA(3)
	require.NoError(t, err)

	require.Equal(t, 3, out.Rows())
	assert.Equal(t, []string{"price"}, out.ColKeys())
	for i, want := range []float64{2, 3, 4} {
		got, err := out.Float64(i, "price")
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestSMAWindowOne(t *testing.T) {
	tbl := newSeriesTable(t, []float64{7, 8})
	out, err := tbl.SMA(1)
	require.NoError(t, err)

	require.Equal(t, 2, out.Rows())
	got, err := out.Float64(1, "price")
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)
}

func TestSMANaNPoisonsItsWindows(t *testing.T) {
	// Null mid-series: windows that include it come out NaN, the rest
	// stay clean.
	tbl := newSeriesTable(t, []float64{1, 2, math.NaN(), 4, 5, 6})
	out, err := tbl.SMA(2)
	require.NoError(t, err)
	require.Equal(t, 5, out.Rows())

	wantNaN := []bool{false, true, true, false, false}
	for i, nan := range wantNaN {
		got, err := out.Float64(i, "price")
		require.NoError(t, err)
		assert.Equal(t, nan, math.IsNaN(got), "window at %d", i)
	}

	got, err := out.Float64(3, "price")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, got, 1e-9)
}

func TestSMAMultipleColumns(t *testing.T) {
	tbl, err := New([]int{0, 1, 2, 3}, []string{"a", "b"}, KindFloat64)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, tbl.SetFloat64(i, "a", float64(i)))
		require.NoError(t, tbl.SetFloat64(i, "b", float64(i*10)))
	}

	out, err := tbl.SMA(2)
	require.NoError(t, err)
	a, err := out.Float64(0, "a")
	require.NoError(t, err)
	b, err := out.Float64(0, "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a, 1e-9)
	assert.InDelta(t, 5.0, b, 1e-9)
}

func TestSMAFiveByFiveNullDiagonal(t *testing.T) {
	cols := []string{"c0", "c1", "c2", "c3", "c4"}
	tbl, err := New([]int{0, 1, 2, 3, 4}, cols, KindFloat64)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		for j, col := range cols {
			if i == j {
				continue // null diagonal
			}
			require.NoError(t, tbl.SetFloat64(i, col, float64(i*10+j)))
		}
	}

	out, err := tbl.SMA(3)
	require.NoError(t, err)
	require.Equal(t, 3, out.Rows())

	for s := 0; s < 3; s++ {
		for j, col := range cols {
			got, err := out.Float64(s, col)
			require.NoError(t, err)

			poisoned := j >= s && j <= s+2
			if poisoned {
				assert.True(t, math.IsNaN(got), "window %d col %s", s, col)
				continue
			}
			want := float64((s*10+j)+((s+1)*10+j)+((s+2)*10+j)) / 3
			assert.InDelta(t, want, got, 1e-9, "window %d col %s", s, col)
		}
	}
}

func TestSMAInvalidWindow(t *testing.T) {
	tbl := newSeriesTable(t, []float64{1, 2, 3})
	for _, w := range []int{0, -1, 4} {
		_, err := tbl.SMA(w)
		require.ErrorIs(t, err, ErrInvalidWindow, "window %d", w)
	}
}
