package tabgo

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/store"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"Plain", nil},
		{"LZ4", []Option{WithCompression(store.CompressionLZ4)}},
		{"ZSTD", []Option{WithCompression(store.CompressionZSTD)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newPriceTable(t, tt.opts...)
			var buf bytes.Buffer
			require.NoError(t, src.Write(&buf))

			got, err := Read[string, string](&buf)
			require.NoError(t, err)
			assert.True(t, src.Equal(got))
		})
	}
}

func TestWriteCompactsFilteredView(t *testing.T) {
	src := newPriceTable(t)
	view, err := src.SelectRows("GOOG", "AAPL")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, view.Write(&buf))

	got, err := Read[string, string](&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOG", "AAPL"}, got.RowKeys())
	assert.False(t, got.IsView())

	// The loaded table is structurally independent and writable.
	_, err = got.AddRow("TSLA")
	require.NoError(t, err)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read[string, string](bytes.NewReader([]byte("not a table")))
	require.ErrorIs(t, err, ErrSerialization)
}

func TestSaveOpenFile(t *testing.T) {
	src := newPriceTable(t)
	path := filepath.Join(t.TempDir(), "nested", "prices.tab")
	require.NoError(t, src.SaveFile(path))

	got, err := OpenFile[string, string](path)
	require.NoError(t, err)
	assert.True(t, src.Equal(got))
}

func TestSerializeMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	src := newPriceTable(t, WithMetricsCollector(metrics))

	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf))

	assert.Equal(t, int64(1), metrics.SerializeCount.Load())
	assert.Equal(t, int64(6), metrics.SerializedCells.Load())
	assert.Zero(t, metrics.SerializeErrors.Load())
}
