package array

import (
	"fmt"
	"time"

	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/core"
)

// Array is the typed column primitive consumed by the content store.
//
// Elements are addressed by physical coordinate. Slots that were never
// written are null. Implementations are not safe for concurrent writers;
// concurrent readers are fine.
type Array interface {
	// Kind returns the element kind of the array.
	Kind() Kind
	// Len returns the number of physical slots.
	Len() int
	// Expand grows the array to at least capacity slots. New slots are null.
	Expand(capacity int)
	// Copy returns a deep copy of the array.
	Copy() Array
	// CopySubset returns a new compact array holding the slots named by
	// coords, in order. Coordinate i of the result mirrors coords[i].
	CopySubset(coords []core.Coordinate) Array

	// IsNull reports whether the slot at coord is null.
	IsNull(coord core.Coordinate) bool
	// SetNull marks the slot at coord null.
	SetNull(coord core.Coordinate)

	// Bool reads the bool at coord. Null slots read as the zero value.
	Bool(coord core.Coordinate) (bool, error)
	// SetBool writes the bool at coord.
	SetBool(coord core.Coordinate, v bool) error
	// Int reads the int at coord.
	Int(coord core.Coordinate) (int, error)
	// SetInt writes the int at coord.
	SetInt(coord core.Coordinate, v int) error
	// Int64 reads the int64 at coord.
	Int64(coord core.Coordinate) (int64, error)
	// SetInt64 writes the int64 at coord.
	SetInt64(coord core.Coordinate, v int64) error
	// Float64 reads the float64 at coord.
	Float64(coord core.Coordinate) (float64, error)
	// SetFloat64 writes the float64 at coord.
	SetFloat64(coord core.Coordinate, v float64) error
	// Value reads the element at coord boxed as any; nil for null slots.
	Value(coord core.Coordinate) any
	// SetValue writes the element at coord. A nil value marks the slot null.
	SetValue(coord core.Coordinate, v any) error

	// WriteValues writes the slots named by coords, in order, to w:
	// first a bitmap of null positions (positions are indexes into coords,
	// not coordinates), then the values. KindAny elements are marshaled
	// with enc.
	WriteValues(w *Writer, coords []core.Coordinate, enc codec.Codec) error
	// ReadValues reads count compact slots from r, the exact mirror of
	// WriteValues with an identity coordinate order.
	ReadValues(r *Reader, count int, dec codec.Codec) error
}

// New returns an empty Array of the given kind with the given capacity.
func New(kind Kind, capacity int) (Array, error) {
	switch kind {
	case KindBool:
		return NewBool(capacity), nil
	case KindInt:
		return NewInt(capacity), nil
	case KindInt32:
		return newDense[int32](KindInt32, capacity), nil
	case KindInt64:
		return NewInt64(capacity), nil
	case KindFloat32:
		return newDense[float32](KindFloat32, capacity), nil
	case KindFloat64:
		return NewFloat64(capacity), nil
	case KindString:
		return NewString(capacity), nil
	case KindTime:
		return NewTime(capacity), nil
	case KindAny:
		return NewAny(capacity), nil
	default:
		return nil, &ErrUnsupportedKind{Kind: kind}
	}
}

// MustNew is like New but panics on an unsupported kind.
func MustNew(kind Kind, capacity int) Array {
	a, err := New(kind, capacity)
	if err != nil {
		panic(err)
	}
	return a
}

// NewBool returns an empty bool array.
func NewBool(capacity int) Array { return newDense[bool](KindBool, capacity) }

// NewInt returns an empty int array.
func NewInt(capacity int) Array { return newDense[int](KindInt, capacity) }

// NewInt64 returns an empty int64 array.
func NewInt64(capacity int) Array { return newDense[int64](KindInt64, capacity) }

// NewFloat64 returns an empty float64 array.
func NewFloat64(capacity int) Array { return newDense[float64](KindFloat64, capacity) }

// NewString returns an empty string array.
func NewString(capacity int) Array { return newDense[string](KindString, capacity) }

// NewTime returns an empty time array.
func NewTime(capacity int) Array { return newDense[time.Time](KindTime, capacity) }

// NewAny returns an empty object array.
func NewAny(capacity int) Array { return newDense[any](KindAny, capacity) }

// Of builds an Array from a Go slice. All elements are non-null, except
// nil elements of a []any. Supported slice types mirror the kinds.
func Of(values any) (Array, error) {
	switch vs := values.(type) {
	case []bool:
		return ofSlice(KindBool, vs), nil
	case []int:
		return ofSlice(KindInt, vs), nil
	case []int32:
		return ofSlice(KindInt32, vs), nil
	case []int64:
		return ofSlice(KindInt64, vs), nil
	case []float32:
		return ofSlice(KindFloat32, vs), nil
	case []float64:
		return ofSlice(KindFloat64, vs), nil
	case []string:
		return ofSlice(KindString, vs), nil
	case []time.Time:
		return ofSlice(KindTime, vs), nil
	case []any:
		a := newDense[any](KindAny, len(vs))
		for i, v := range vs {
			if v == nil {
				continue
			}
			if err := a.SetValue(core.Coordinate(i), v); err != nil {
				return nil, err
			}
		}
		return a, nil
	default:
		return nil, fmt.Errorf("cannot build array from %T", values)
	}
}

// MustOf is like Of but panics on an unsupported slice type.
func MustOf(values any) Array {
	a, err := Of(values)
	if err != nil {
		panic(err)
	}
	return a
}
