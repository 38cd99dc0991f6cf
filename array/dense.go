package array

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/core"
)

// Dense is the generic Array implementation: a plain Go slice of the
// element type plus a roaring bitmap of null coordinates. Each element
// kind gets its own monomorphized instantiation, so the typed fast paths
// never box elements.
type Dense[T any] struct {
	kind  Kind
	data  []T
	nulls *roaring.Bitmap
}

func newDense[T any](kind Kind, capacity int) *Dense[T] {
	if capacity < 0 {
		capacity = 0
	}
	a := &Dense[T]{
		kind:  kind,
		data:  make([]T, capacity),
		nulls: roaring.New(),
	}
	if capacity > 0 {
		a.nulls.AddRange(0, uint64(capacity))
	}
	return a
}

func ofSlice[T any](kind Kind, values []T) *Dense[T] {
	a := newDense[T](kind, len(values))
	copy(a.data, values)
	a.nulls.Clear()
	return a
}

// Kind returns the element kind of the array.
func (a *Dense[T]) Kind() Kind { return a.kind }

// Len returns the number of physical slots.
func (a *Dense[T]) Len() int { return len(a.data) }

// Expand grows the array to at least capacity slots. New slots are null.
func (a *Dense[T]) Expand(capacity int) {
	old := len(a.data)
	if capacity <= old {
		return
	}
	grown := make([]T, capacity)
	copy(grown, a.data)
	a.data = grown
	a.nulls.AddRange(uint64(old), uint64(capacity))
}

// Copy returns a deep copy of the array.
func (a *Dense[T]) Copy() Array {
	out := &Dense[T]{
		kind:  a.kind,
		data:  make([]T, len(a.data)),
		nulls: a.nulls.Clone(),
	}
	copy(out.data, a.data)
	return out
}

// CopySubset returns a compact copy of the slots named by coords, in order.
func (a *Dense[T]) CopySubset(coords []core.Coordinate) Array {
	out := newDense[T](a.kind, len(coords))
	for i, c := range coords {
		out.data[i] = a.data[c]
		if !a.nulls.Contains(uint32(c)) {
			out.nulls.Remove(uint32(i))
		}
	}
	return out
}

// IsNull reports whether the slot at coord is null.
func (a *Dense[T]) IsNull(coord core.Coordinate) bool {
	return a.nulls.Contains(uint32(coord))
}

// SetNull marks the slot at coord null.
func (a *Dense[T]) SetNull(coord core.Coordinate) {
	var zero T
	a.data[coord] = zero
	a.nulls.Add(uint32(coord))
}

// Bool reads the bool at coord.
func (a *Dense[T]) Bool(coord core.Coordinate) (bool, error) {
	d, ok := any(a.data).([]bool)
	if !ok {
		return false, &ErrTypeMismatch{Expected: KindBool, Actual: a.kind}
	}
	return d[coord], nil
}

// SetBool writes the bool at coord.
func (a *Dense[T]) SetBool(coord core.Coordinate, v bool) error {
	d, ok := any(a.data).([]bool)
	if !ok {
		return &ErrTypeMismatch{Expected: KindBool, Actual: a.kind}
	}
	d[coord] = v
	a.nulls.Remove(uint32(coord))
	return nil
}

// Int reads the int at coord.
func (a *Dense[T]) Int(coord core.Coordinate) (int, error) {
	d, ok := any(a.data).([]int)
	if !ok {
		return 0, &ErrTypeMismatch{Expected: KindInt, Actual: a.kind}
	}
	return d[coord], nil
}

// SetInt writes the int at coord.
func (a *Dense[T]) SetInt(coord core.Coordinate, v int) error {
	d, ok := any(a.data).([]int)
	if !ok {
		return &ErrTypeMismatch{Expected: KindInt, Actual: a.kind}
	}
	d[coord] = v
	a.nulls.Remove(uint32(coord))
	return nil
}

// Int64 reads the int64 at coord.
func (a *Dense[T]) Int64(coord core.Coordinate) (int64, error) {
	d, ok := any(a.data).([]int64)
	if !ok {
		return 0, &ErrTypeMismatch{Expected: KindInt64, Actual: a.kind}
	}
	return d[coord], nil
}

// SetInt64 writes the int64 at coord.
func (a *Dense[T]) SetInt64(coord core.Coordinate, v int64) error {
	d, ok := any(a.data).([]int64)
	if !ok {
		return &ErrTypeMismatch{Expected: KindInt64, Actual: a.kind}
	}
	d[coord] = v
	a.nulls.Remove(uint32(coord))
	return nil
}

// Float64 reads the float64 at coord.
func (a *Dense[T]) Float64(coord core.Coordinate) (float64, error) {
	d, ok := any(a.data).([]float64)
	if !ok {
		return 0, &ErrTypeMismatch{Expected: KindFloat64, Actual: a.kind}
	}
	return d[coord], nil
}

// SetFloat64 writes the float64 at coord.
func (a *Dense[T]) SetFloat64(coord core.Coordinate, v float64) error {
	d, ok := any(a.data).([]float64)
	if !ok {
		return &ErrTypeMismatch{Expected: KindFloat64, Actual: a.kind}
	}
	d[coord] = v
	a.nulls.Remove(uint32(coord))
	return nil
}

// Value reads the element at coord boxed as any; nil for null slots.
func (a *Dense[T]) Value(coord core.Coordinate) any {
	if a.nulls.Contains(uint32(coord)) {
		return nil
	}
	return a.data[coord]
}

// SetValue writes the element at coord. Nil marks the slot null. The
// dynamic type of v must match the array's element type.
func (a *Dense[T]) SetValue(coord core.Coordinate, v any) error {
	if v == nil {
		a.SetNull(coord)
		return nil
	}
	t, ok := v.(T)
	if !ok {
		return &ErrTypeMismatch{Expected: a.kind, Actual: KindOf(v)}
	}
	a.data[coord] = t
	a.nulls.Remove(uint32(coord))
	return nil
}

// WriteValues writes the slots named by coords, in order.
func (a *Dense[T]) WriteValues(w *Writer, coords []core.Coordinate, enc codec.Codec) error {
	nulls := roaring.New()
	for i, c := range coords {
		if a.nulls.Contains(uint32(c)) {
			nulls.Add(uint32(i))
		}
	}
	if err := w.WriteBitmap(nulls); err != nil {
		return err
	}

	switch d := any(a.data).(type) {
	case []bool:
		buf := make([]byte, len(coords))
		for i, c := range coords {
			if d[c] {
				buf[i] = 1
			}
		}
		return w.WriteBytes(buf)
	case []int:
		out := make([]int64, len(coords))
		for i, c := range coords {
			out[i] = int64(d[c])
		}
		return w.WriteInt64Slice(out)
	case []int32:
		out := make([]int32, len(coords))
		for i, c := range coords {
			out[i] = d[c]
		}
		return w.WriteInt32Slice(out)
	case []int64:
		out := make([]int64, len(coords))
		for i, c := range coords {
			out[i] = d[c]
		}
		return w.WriteInt64Slice(out)
	case []float32:
		out := make([]float32, len(coords))
		for i, c := range coords {
			out[i] = d[c]
		}
		return w.WriteFloat32Slice(out)
	case []float64:
		out := make([]float64, len(coords))
		for i, c := range coords {
			out[i] = d[c]
		}
		return w.WriteFloat64Slice(out)
	case []string:
		for _, c := range coords {
			if err := w.WriteString(d[c]); err != nil {
				return err
			}
		}
		return nil
	case []time.Time:
		out := make([]int64, len(coords))
		for i, c := range coords {
			if nulls.Contains(uint32(i)) {
				continue
			}
			out[i] = d[c].UnixNano()
		}
		return w.WriteInt64Slice(out)
	case []any:
		for i, c := range coords {
			if nulls.Contains(uint32(i)) {
				if err := w.WriteByteSlice(nil); err != nil {
					return err
				}
				continue
			}
			b, err := enc.Marshal(d[c])
			if err != nil {
				return err
			}
			if err := w.WriteByteSlice(b); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ErrUnsupportedKind{Kind: a.kind}
	}
}

// ReadValues reads count compact slots from r, mirroring WriteValues.
func (a *Dense[T]) ReadValues(r *Reader, count int, dec codec.Codec) error {
	a.Expand(count)
	nulls, err := r.ReadBitmap()
	if err != nil {
		return err
	}

	switch d := any(a.data).(type) {
	case []bool:
		buf := make([]byte, count)
		if err := r.ReadBytes(buf); err != nil {
			return err
		}
		for i := range buf {
			d[i] = buf[i] != 0
		}
	case []int:
		in, err := r.ReadInt64Slice(count)
		if err != nil {
			return err
		}
		for i, v := range in {
			d[i] = int(v)
		}
	case []int32:
		in, err := r.ReadInt32Slice(count)
		if err != nil {
			return err
		}
		copy(d, in)
	case []int64:
		in, err := r.ReadInt64Slice(count)
		if err != nil {
			return err
		}
		copy(d, in)
	case []float32:
		in, err := r.ReadFloat32Slice(count)
		if err != nil {
			return err
		}
		copy(d, in)
	case []float64:
		in, err := r.ReadFloat64Slice(count)
		if err != nil {
			return err
		}
		copy(d, in)
	case []string:
		for i := 0; i < count; i++ {
			s, err := r.ReadString()
			if err != nil {
				return err
			}
			d[i] = s
		}
	case []time.Time:
		in, err := r.ReadInt64Slice(count)
		if err != nil {
			return err
		}
		for i, v := range in {
			if nulls.Contains(uint32(i)) {
				continue
			}
			d[i] = time.Unix(0, v)
		}
	case []any:
		for i := 0; i < count; i++ {
			b, err := r.ReadByteSlice()
			if err != nil {
				return err
			}
			if len(b) == 0 {
				continue
			}
			var v any
			if err := dec.Unmarshal(b, &v); err != nil {
				return err
			}
			d[i] = v
		}
	default:
		return &ErrUnsupportedKind{Kind: a.kind}
	}

	a.nulls.RemoveRange(0, uint64(count))
	a.nulls.Or(nulls)
	return nil
}
