package axis

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tabgo/core"
)

// Filter returns a read-only view presenting the given subset (or
// reorder) of this index's ordinals. The view shares the coordinate
// space: retained keys keep their physical coordinates, so backing
// arrays stay valid without copying.
func (ix *Index[K]) Filter(ordinals []core.Ordinal) (*Index[K], error) {
	out := &Index[K]{
		keys:     make([]K, len(ordinals)),
		ordinals: make([]core.Coordinate, len(ordinals)),
		coords:   make(map[K]core.Coordinate, len(ordinals)),
		filter:   true,
		capacity: ix.capacity,
	}
	for i, o := range ordinals {
		if o < 0 || int(o) >= len(ix.keys) {
			return nil, &ErrOutOfBounds{Ordinal: int(o), Size: len(ix.keys)}
		}
		k := ix.keys[o]
		out.keys[i] = k
		out.ordinals[i] = ix.ordinals[o]
		out.coords[k] = ix.ordinals[o]
	}
	return out, nil
}

// FilterKeys returns a read-only view presenting exactly the given keys,
// in the given order.
func (ix *Index[K]) FilterKeys(keys []K) (*Index[K], error) {
	ordinals := make([]core.Ordinal, len(keys))
	for i, k := range keys {
		o, ok := ix.TryOrdinal(k)
		if !ok {
			return nil, &ErrMissingKey{Key: k}
		}
		ordinals[i] = o
	}
	return ix.Filter(ordinals)
}

// FilterBitmap returns a read-only view over the ordinals set in rb, in
// ascending ordinal order. Useful with selections produced by predicate
// scans.
func (ix *Index[K]) FilterBitmap(rb *roaring.Bitmap) (*Index[K], error) {
	ordinals := make([]core.Ordinal, 0, rb.GetCardinality())
	it := rb.Iterator()
	for it.HasNext() {
		ordinals = append(ordinals, core.Ordinal(it.Next()))
	}
	return ix.Filter(ordinals)
}
