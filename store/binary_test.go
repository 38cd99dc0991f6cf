package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/core"
)

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression CompressionType
	}{
		{"None", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"ZSTD", CompressionZSTD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestContent(t)
			var buf bytes.Buffer
			require.NoError(t, src.Write(&buf, tt.compression, nil))

			got, err := Read[string, string](&buf, nil)
			require.NoError(t, err)
			assert.True(t, src.Equal(got))
		})
	}
}

func TestBinaryRoundTripNulls(t *testing.T) {
	src := newTestContent(t)
	rc, err := src.RowCoordinateOf("r1")
	require.NoError(t, err)
	cc, err := src.ColCoordinateOf("c0")
	require.NoError(t, err)
	require.NoError(t, src.SetValueAt(rc, cc, nil))

	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf, CompressionNone, nil))

	got, err := Read[string, string](&buf, nil)
	require.NoError(t, err)
	require.True(t, src.Equal(got))

	grc, err := got.RowCoordinateOf("r1")
	require.NoError(t, err)
	gcc, err := got.ColCoordinateOf("c0")
	require.NoError(t, err)
	assert.True(t, got.IsNullAt(grc, gcc))
}

func TestBinaryRoundTripSortedView(t *testing.T) {
	src := newTestContent(t)
	sorted := src.SortedRows(false, func(a, b core.Coordinate) int { return int(b - a) })
	require.Equal(t, []string{"r2", "r1", "r0"}, sorted.Rows().KeySlice())

	var buf bytes.Buffer
	require.NoError(t, sorted.Write(&buf, CompressionNone, nil))

	got, err := Read[string, string](&buf, nil)
	require.NoError(t, err)

	// Logical order survives the trip even though physical storage was
	// never permuted.
	assert.Equal(t, []string{"r2", "r1", "r0"}, got.Rows().KeySlice())
	assert.True(t, sorted.Equal(got))
}

func TestBinaryRoundTripRowStore(t *testing.T) {
	src := Transpose(newTestContent(t))
	require.False(t, src.IsColumnStore())

	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf, CompressionNone, nil))

	got, err := Read[string, string](&buf, nil)
	require.NoError(t, err)
	assert.False(t, got.IsColumnStore())
	assert.True(t, src.Equal(got))
}

func TestBinaryRoundTripIntKeys(t *testing.T) {
	src, err := New([]int{7, 8}, []string{"a"}, array.KindString, 0)
	require.NoError(t, err)
	rc, err := src.RowCoordinateOf(8)
	require.NoError(t, err)
	cc, err := src.ColCoordinateOf("a")
	require.NoError(t, err)
	require.NoError(t, src.SetValueAt(rc, cc, "v"))

	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf, CompressionZSTD, codec.JSON{}))

	got, err := Read[int, string](&buf, codec.JSON{})
	require.NoError(t, err)
	assert.True(t, src.Equal(got))
}

func TestReadRejectsBadHeader(t *testing.T) {
	src := newTestContent(t)
	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf, CompressionNone, nil))
	data := buf.Bytes()

	t.Run("Magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] ^= 0xFF
		_, err := Read[string, string](bytes.NewReader(bad), nil)
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("Version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] = 0xEE
		_, err := Read[string, string](bytes.NewReader(bad), nil)
		require.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("Compression", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[6] = 0x77
		_, err := Read[string, string](bytes.NewReader(bad), nil)
		require.ErrorIs(t, err, ErrUnknownCompression)
	})
}

func TestReadRejectsKeyKindMismatch(t *testing.T) {
	src := newTestContent(t)
	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf, CompressionNone, nil))

	_, err := Read[int, string](&buf, nil)
	var mismatch *ErrKeyKindMismatch
	require.ErrorAs(t, err, &mismatch)
}
