// Package array provides the typed, nullable, resizable column primitive
// that backs tabgo content stores.
//
// An Array is a homogeneous sequence of one element kind, addressed by
// physical coordinate. Reads and writes on the four numeric fast paths
// (bool, int, int64, float64) never box the element; everything else goes
// through the generic Value accessors.
package array

import (
	"fmt"
	"time"
)

// Kind identifies the concrete element type stored in an Array.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindBool represents a boolean element.
	KindBool
	// KindInt represents a platform int element (serialized as 64-bit).
	KindInt
	// KindInt32 represents an int32 element.
	KindInt32
	// KindInt64 represents an int64 element.
	KindInt64
	// KindFloat32 represents a float32 element.
	KindFloat32
	// KindFloat64 represents a float64 element.
	KindFloat64
	// KindString represents a string element.
	KindString
	// KindTime represents a time.Time element (serialized as Unix nanos).
	KindTime
	// KindAny represents an arbitrary object element.
	KindAny
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindAny:
		return "any"
	default:
		return "invalid"
	}
}

// KindOf returns the Kind matching the dynamic type of v, or KindAny for
// values that have no dedicated kind. A nil value has no kind.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindInvalid
	case bool:
		return KindBool
	case int:
		return KindInt
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case string:
		return KindString
	case time.Time:
		return KindTime
	default:
		return KindAny
	}
}

// ErrTypeMismatch indicates an accessor was called against an Array of a
// different element kind.
type ErrTypeMismatch struct {
	Expected Kind
	Actual   Kind
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ErrUnsupportedKind indicates a kind that the requested operation cannot
// handle (for example constructing an array from an unknown slice type).
type ErrUnsupportedKind struct {
	Kind Kind
}

func (e *ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("unsupported element kind: %s", e.Kind)
}
