// Package axis implements the per-dimension index of a tabgo table: the
// mapping between keys, logical ordinals and physical storage coordinates.
//
// Keys are unique. Ordinals form a dense 0..Size()-1 logical view whose
// order changes under sorting and filtering. Coordinates name physical
// slots in the backing arrays and stay stable across filtering and
// sorting, so stored data never has to move.
package axis

import (
	"iter"
	"slices"

	"github.com/hupe1980/tabgo/core"
)

// DuplicatePolicy controls how Add and AddAll treat keys that are already
// present. The policy is an explicit argument on every insertion; there is
// no ambient process-wide setting.
type DuplicatePolicy uint8

const (
	// RejectDuplicates makes duplicate insertions fail with ErrDuplicateKey.
	RejectDuplicates DuplicatePolicy = iota
	// IgnoreDuplicates makes duplicate insertions a no-op.
	IgnoreDuplicates
)

// Index maps keys of type K to logical ordinals and physical coordinates.
//
// An Index is either an owner (created by New, grows via Add) or a filter
// (created by Filter and friends, structurally read-only). Not safe for
// concurrent mutation.
type Index[K comparable] struct {
	keys     []K                   // keys in current ordinal order
	ordinals []core.Coordinate     // coordinate per ordinal, parallel to keys
	coords   map[K]core.Coordinate // stable physical slot per key
	ordMap   map[K]core.Ordinal    // lazy inverse, nil when stale
	filter   bool
	capacity int
}

// New creates an owner index over the given keys, in insertion order.
// Duplicate keys fail with ErrDuplicateKey.
func New[K comparable](keys []K) (*Index[K], error) {
	ix := &Index[K]{
		keys:     make([]K, 0, len(keys)),
		ordinals: make([]core.Coordinate, 0, len(keys)),
		coords:   make(map[K]core.Coordinate, len(keys)),
	}
	for _, k := range keys {
		if _, err := ix.Add(k, RejectDuplicates); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// MustNew is like New but panics on duplicate keys.
func MustNew[K comparable](keys []K) *Index[K] {
	ix, err := New(keys)
	if err != nil {
		panic(err)
	}
	return ix
}

// Size returns the number of keys in the logical view.
func (ix *Index[K]) Size() int { return len(ix.keys) }

// Capacity returns the number of physical coordinate slots currently
// reserved, independent of Size.
func (ix *Index[K]) Capacity() int { return ix.capacity }

// Reserve raises the reserved physical slot count. Shrinking is a no-op.
func (ix *Index[K]) Reserve(capacity int) {
	if capacity > ix.capacity {
		ix.capacity = capacity
	}
}

// IsFilter reports whether this index is a read-only view over a subset
// or reorder of another index's ordinals.
func (ix *Index[K]) IsFilter() bool { return ix.filter }

// Contains reports whether key is present.
func (ix *Index[K]) Contains(key K) bool {
	_, ok := ix.coords[key]
	return ok
}

// Coordinate returns the physical coordinate of key, or NoCoordinate and
// false when absent.
func (ix *Index[K]) Coordinate(key K) (core.Coordinate, bool) {
	c, ok := ix.coords[key]
	if !ok {
		return core.NoCoordinate, false
	}
	return c, true
}

// CoordinateOf returns the physical coordinate of key or ErrMissingKey.
func (ix *Index[K]) CoordinateOf(key K) (core.Coordinate, error) {
	c, ok := ix.coords[key]
	if !ok {
		return core.NoCoordinate, &ErrMissingKey{Key: key}
	}
	return c, nil
}

// CoordinateAt returns the physical coordinate at the given logical
// ordinal or ErrOutOfBounds.
func (ix *Index[K]) CoordinateAt(ordinal core.Ordinal) (core.Coordinate, error) {
	if ordinal < 0 || int(ordinal) >= len(ix.ordinals) {
		return core.NoCoordinate, &ErrOutOfBounds{Ordinal: int(ordinal), Size: len(ix.ordinals)}
	}
	return ix.ordinals[ordinal], nil
}

// KeyAt returns the key at the given logical ordinal or ErrOutOfBounds.
func (ix *Index[K]) KeyAt(ordinal core.Ordinal) (K, error) {
	if ordinal < 0 || int(ordinal) >= len(ix.keys) {
		var zero K
		return zero, &ErrOutOfBounds{Ordinal: int(ordinal), Size: len(ix.keys)}
	}
	return ix.keys[ordinal], nil
}

// OrdinalOf returns the logical ordinal of key or ErrMissingKey.
func (ix *Index[K]) OrdinalOf(key K) (core.Ordinal, error) {
	o, ok := ix.TryOrdinal(key)
	if !ok {
		return 0, &ErrMissingKey{Key: key}
	}
	return o, nil
}

// TryOrdinal probes for the logical ordinal of key.
func (ix *Index[K]) TryOrdinal(key K) (core.Ordinal, bool) {
	if ix.ordMap == nil {
		ix.ordMap = make(map[K]core.Ordinal, len(ix.keys))
		for i, k := range ix.keys {
			ix.ordMap[k] = core.Ordinal(i)
		}
	}
	o, ok := ix.ordMap[key]
	return o, ok
}

// Add appends key with the next free physical coordinate. It returns
// whether the key was inserted; duplicates follow policy. Filter indexes
// reject adds with ErrFiltered.
func (ix *Index[K]) Add(key K, policy DuplicatePolicy) (bool, error) {
	if ix.filter {
		return false, ErrFiltered
	}
	if _, ok := ix.coords[key]; ok {
		if policy == IgnoreDuplicates {
			return false, nil
		}
		return false, &ErrDuplicateKey{Key: key}
	}
	coord := core.Coordinate(len(ix.coords))
	ix.coords[key] = coord
	ix.keys = append(ix.keys, key)
	ix.ordinals = append(ix.ordinals, coord)
	if ix.ordMap != nil {
		ix.ordMap[key] = core.Ordinal(len(ix.keys) - 1)
	}
	if len(ix.coords) > ix.capacity {
		ix.capacity = len(ix.coords)
	}
	return true, nil
}

// AddAll appends keys under the given policy and returns the keys
// actually inserted, in insertion order.
func (ix *Index[K]) AddAll(keys []K, policy DuplicatePolicy) ([]K, error) {
	added := make([]K, 0, len(keys))
	for _, k := range keys {
		ok, err := ix.Add(k, policy)
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, k)
		}
	}
	return added, nil
}

// Copy returns a deep copy. With resetOrder the copy's ordinal order is
// restored to natural insertion order (ascending coordinates), which
// callers use to sort without mutating the original.
func (ix *Index[K]) Copy(resetOrder bool) *Index[K] {
	out := &Index[K]{
		keys:     slices.Clone(ix.keys),
		ordinals: slices.Clone(ix.ordinals),
		coords:   make(map[K]core.Coordinate, len(ix.coords)),
		filter:   ix.filter,
		capacity: ix.capacity,
	}
	for k, c := range ix.coords {
		out.coords[k] = c
	}
	if resetOrder {
		out.resetOrder()
	}
	return out
}

// resetOrder restores natural insertion order by sorting the permutation
// back to ascending coordinates.
func (ix *Index[K]) resetOrder() {
	perm := make([]int, len(ix.ordinals))
	for i := range perm {
		perm[i] = i
	}
	slices.SortFunc(perm, func(a, b int) int {
		return int(ix.ordinals[a]) - int(ix.ordinals[b])
	})
	ix.applyPermutation(perm)
}

// applyPermutation reorders keys and ordinals so that position i holds
// what was at position perm[i].
func (ix *Index[K]) applyPermutation(perm []int) {
	keys := make([]K, len(perm))
	ords := make([]core.Coordinate, len(perm))
	for i, p := range perm {
		keys[i] = ix.keys[p]
		ords[i] = ix.ordinals[p]
	}
	ix.keys = keys
	ix.ordinals = ords
	ix.ordMap = nil
}

// Remap returns a copy whose keys are rewritten through f, preserving
// every key's coordinate and the current ordinal order. Colliding mapped
// keys fail with ErrDuplicateKey.
func (ix *Index[K]) Remap(f func(K) K) (*Index[K], error) {
	out := &Index[K]{
		keys:     make([]K, len(ix.keys)),
		ordinals: slices.Clone(ix.ordinals),
		coords:   make(map[K]core.Coordinate, len(ix.coords)),
		filter:   ix.filter,
		capacity: ix.capacity,
	}
	for i, k := range ix.keys {
		mapped := f(k)
		if _, ok := out.coords[mapped]; ok {
			return nil, &ErrDuplicateKey{Key: mapped}
		}
		out.keys[i] = mapped
		out.coords[mapped] = ix.ordinals[i]
	}
	return out, nil
}

// Coordinates yields the physical coordinates in current ordinal order.
// It drives bulk array copies and serialization.
func (ix *Index[K]) Coordinates() iter.Seq[core.Coordinate] {
	return func(yield func(core.Coordinate) bool) {
		for _, c := range ix.ordinals {
			if !yield(c) {
				return
			}
		}
	}
}

// CoordinateSlice returns the physical coordinates in current ordinal
// order as a fresh slice.
func (ix *Index[K]) CoordinateSlice() []core.Coordinate {
	return slices.Clone(ix.ordinals)
}

// Keys yields the keys in current ordinal order.
func (ix *Index[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range ix.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// KeySlice returns the keys in current ordinal order as a fresh slice.
func (ix *Index[K]) KeySlice() []K {
	return slices.Clone(ix.keys)
}
