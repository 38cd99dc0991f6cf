package store

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tabgo/array"
)

var (
	// ErrNotColumnStore indicates a structural mutation that is only legal
	// on a column-store layout (adding rows or columns to a transposed
	// content).
	ErrNotColumnStore = errors.New("rows and columns can only be added in column-store layout")

	// ErrUnpositioned indicates a cursor accessor before any movement call.
	ErrUnpositioned = errors.New("cursor has not been positioned")

	// ErrInvalidMagic indicates serialized data that is not a tabgo table.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion indicates an unsupported serialization version.
	ErrInvalidVersion = errors.New("invalid format version")

	// ErrUnknownCodec indicates a serialized table whose object codec is
	// not registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownCompression indicates an unsupported compression tag.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrInvalidMultiplier indicates a sort multiplier other than +1/-1.
	ErrInvalidMultiplier = errors.New("sort multiplier must be +1 or -1")
)

// ErrKeyKindMismatch indicates serialized key data whose element kind does
// not match the key type parameter of the content being deserialized.
type ErrKeyKindMismatch struct {
	Axis     string
	Expected array.Kind
	Actual   array.Kind
}

func (e *ErrKeyKindMismatch) Error() string {
	return fmt.Sprintf("%s key kind mismatch: expected %s, got %s", e.Axis, e.Expected, e.Actual)
}

// CellError annotates an access failure with the offending cell location.
//
// The original underlying error can be accessed via errors.Unwrap.
type CellError struct {
	RowKey any
	ColKey any
	cause  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell (%v, %v): %v", e.RowKey, e.ColKey, e.cause)
}

func (e *CellError) Unwrap() error { return e.cause }
