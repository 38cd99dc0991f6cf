package array

import (
	"bytes"
	"testing"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/core"
)

func TestWriterReaderPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteUint8(7))
	require.NoError(t, w.WriteUint16(512))
	require.NoError(t, w.WriteUint32(1<<20))
	require.NoError(t, w.WriteInt32(-42))
	require.NoError(t, w.WriteUvarint(300))
	require.NoError(t, w.WriteString("héllo"))
	require.NoError(t, w.WriteFloat64Slice([]float64{1.5, -2.5}))

	r := NewReader(&buf)

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(512), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<20), u32)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-42), i32)

	uv, err := r.ReadUvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), uv)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	f64s, err := r.ReadFloat64Slice(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.5}, f64s)
}

func TestWriterReaderBitmap(t *testing.T) {
	rb := roaring.New()
	rb.AddMany([]uint32{0, 5, 100000})

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteBitmap(rb))

	got, err := NewReader(&buf).ReadBitmap()
	require.NoError(t, err)
	assert.True(t, rb.Equals(got))
}

func TestScalarRoundTrip(t *testing.T) {
	ts := time.Unix(1700000000, 12345).UTC()
	tests := []struct {
		name string
		kind Kind
		val  any
	}{
		{"Bool", KindBool, true},
		{"Int", KindInt, -9},
		{"Int64", KindInt64, int64(1) << 40},
		{"Float64", KindFloat64, 2.75},
		{"String", KindString, "key-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(&buf).WriteScalar(tt.kind, tt.val))
			got, err := NewReader(&buf).ReadScalar(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.val, got)
		})
	}

	// Times travel as UnixNano, so compare instants rather than
	// struct representations.
	t.Run("Time", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteScalar(KindTime, ts))
		got, err := NewReader(&buf).ReadScalar(KindTime)
		require.NoError(t, err)
		require.IsType(t, time.Time{}, got)
		assert.True(t, ts.Equal(got.(time.Time)))
	})
}

func TestValuesRoundTripPreservesNulls(t *testing.T) {
	src := MustOf([]float64{1, 2, 3, 4})
	src.SetNull(1)

	var buf bytes.Buffer
	coords := []core.Coordinate{0, 1, 2, 3}
	require.NoError(t, src.WriteValues(NewWriter(&buf), coords, codec.Default))

	dst := MustNew(KindFloat64, 4)
	require.NoError(t, dst.ReadValues(NewReader(&buf), 4, codec.Default))

	for i := 0; i < 4; i++ {
		assert.Equal(t, src.IsNull(core.Coordinate(i)), dst.IsNull(core.Coordinate(i)), "slot %d", i)
	}
	got, err := dst.Float64(3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestValuesRoundTripPermuted(t *testing.T) {
	src := MustOf([]string{"a", "b", "c"})

	// Writing in logical order c, a, b must read back in that order.
	var buf bytes.Buffer
	require.NoError(t, src.WriteValues(NewWriter(&buf), []core.Coordinate{2, 0, 1}, codec.Default))

	dst := MustNew(KindString, 3)
	require.NoError(t, dst.ReadValues(NewReader(&buf), 3, codec.Default))

	assert.Equal(t, "c", dst.Value(0))
	assert.Equal(t, "a", dst.Value(1))
	assert.Equal(t, "b", dst.Value(2))
}

func TestValuesRoundTripAnyUsesCodec(t *testing.T) {
	src := MustNew(KindAny, 3)
	require.NoError(t, src.SetValue(0, map[string]any{"k": "v"}))
	require.NoError(t, src.SetValue(2, "plain"))

	var buf bytes.Buffer
	require.NoError(t, src.WriteValues(NewWriter(&buf), []core.Coordinate{0, 1, 2}, codec.Default))

	dst := MustNew(KindAny, 3)
	require.NoError(t, dst.ReadValues(NewReader(&buf), 3, codec.Default))

	assert.Equal(t, map[string]any{"k": "v"}, dst.Value(0))
	assert.True(t, dst.IsNull(1))
	assert.Equal(t, "plain", dst.Value(2))
}
