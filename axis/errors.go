package axis

import (
	"errors"
	"fmt"
)

// ErrFiltered indicates a structural mutation on a filtered (read-only
// view) index.
var ErrFiltered = errors.New("axis is a filter view and cannot accept new keys")

// ErrMissingKey indicates a key absent from the index.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMissingKey struct {
	Key any
}

func (e *ErrMissingKey) Error() string {
	return fmt.Sprintf("missing key: %v", e.Key)
}

// ErrOutOfBounds indicates an ordinal outside the index's logical range.
type ErrOutOfBounds struct {
	Ordinal int
	Size    int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("ordinal %d out of bounds [0,%d)", e.Ordinal, e.Size)
}

// ErrDuplicateKey indicates a duplicate insertion under RejectDuplicates.
type ErrDuplicateKey struct {
	Key any
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}
