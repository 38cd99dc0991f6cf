package tabgo

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/store"
)

var (
	// ErrMissingKey is returned when a row or column key is absent.
	ErrMissingKey = errors.New("missing key")

	// ErrOutOfBounds is returned when an ordinal falls outside the axis.
	ErrOutOfBounds = errors.New("ordinal out of bounds")

	// ErrTypeMismatch is returned when a typed accessor hits a cell of a
	// different element kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrStructural is returned on illegal structural mutation: adding to
	// a filtered axis, adding rows/columns in row-store layout, or a
	// duplicate key under RejectDuplicates.
	ErrStructural = errors.New("structural violation")

	// ErrSerialization is returned on malformed or truncated binary data.
	ErrSerialization = errors.New("serialization failed")

	// ErrInvalidWindow is returned when a moving-window size does not fit
	// the table.
	ErrInvalidWindow = errors.New("window size must be in [1, rowCount]")
)

// translateError unifies the taxonomy of the axis, array and store
// packages into the table-level sentinels. The underlying typed error
// stays reachable via errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var missing *axis.ErrMissingKey
	if errors.As(err, &missing) {
		return fmt.Errorf("%w: %w", ErrMissingKey, err)
	}
	var bounds *axis.ErrOutOfBounds
	if errors.As(err, &bounds) {
		return fmt.Errorf("%w: %w", ErrOutOfBounds, err)
	}

	var mismatch *array.ErrTypeMismatch
	if errors.As(err, &mismatch) {
		return fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}

	if errors.Is(err, axis.ErrFiltered) || errors.Is(err, store.ErrNotColumnStore) {
		return fmt.Errorf("%w: %w", ErrStructural, err)
	}
	var dup *axis.ErrDuplicateKey
	if errors.As(err, &dup) {
		return fmt.Errorf("%w: %w", ErrStructural, err)
	}

	if errors.Is(err, store.ErrInvalidMagic) ||
		errors.Is(err, store.ErrInvalidVersion) ||
		errors.Is(err, store.ErrUnknownCodec) ||
		errors.Is(err, store.ErrUnknownCompression) ||
		errors.Is(err, array.ErrCorrupt) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	var kindMismatch *store.ErrKeyKindMismatch
	if errors.As(err, &kindMismatch) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return err
}
