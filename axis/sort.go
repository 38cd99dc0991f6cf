package axis

import (
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tabgo/core"
)

// Below this many entries a parallel sort is not worth the goroutine
// handoff.
const parallelSortThreshold = 4096

// Sort reorders the ordinal→coordinate permutation by key. Only the
// logical view changes; coordinates are never renumbered, so stored
// column data stays valid. The sort is stable: equal keys keep their
// prior ordinal order. A nil cmp resets the view to natural insertion
// order instead of sorting.
func (ix *Index[K]) Sort(parallel bool, cmp func(a, b K) int) {
	if cmp == nil {
		ix.resetOrder()
		ix.ordMap = nil
		return
	}
	ix.sortPositions(parallel, func(a, b int) int {
		return cmp(ix.keys[a], ix.keys[b])
	})
}

// SortByCoordinate reorders the permutation using a comparator over
// physical coordinates. This is how multi-column comparators bound to
// backing arrays drive a sort. A nil cmp resets to insertion order.
func (ix *Index[K]) SortByCoordinate(parallel bool, cmp func(a, b core.Coordinate) int) {
	if cmp == nil {
		ix.resetOrder()
		ix.ordMap = nil
		return
	}
	ix.sortPositions(parallel, func(a, b int) int {
		return cmp(ix.ordinals[a], ix.ordinals[b])
	})
}

func (ix *Index[K]) sortPositions(parallel bool, posCmp func(a, b int) int) {
	perm := make([]int, len(ix.keys))
	for i := range perm {
		perm[i] = i
	}
	// Breaking ties by prior position makes the order strict, which gives
	// stability for free and keeps the parallel chunk merge deterministic.
	strict := func(a, b int) int {
		if c := posCmp(a, b); c != 0 {
			return c
		}
		return a - b
	}
	if parallel && len(perm) >= parallelSortThreshold {
		parallelSort(perm, strict)
	} else {
		slices.SortFunc(perm, strict)
	}
	ix.applyPermutation(perm)
}

// parallelSort sorts chunks concurrently, then merges pairwise.
func parallelSort(perm []int, cmp func(a, b int) int) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 2 {
		slices.SortFunc(perm, cmp)
		return
	}
	chunkLen := (len(perm) + workers - 1) / workers
	var chunks [][]int
	for lo := 0; lo < len(perm); lo += chunkLen {
		hi := min(lo+chunkLen, len(perm))
		chunks = append(chunks, perm[lo:hi])
	}

	var g errgroup.Group
	for _, chunk := range chunks {
		g.Go(func() error {
			slices.SortFunc(chunk, cmp)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	for len(chunks) > 1 {
		merged := make([][]int, 0, (len(chunks)+1)/2)
		for i := 0; i < len(chunks); i += 2 {
			if i+1 == len(chunks) {
				merged = append(merged, chunks[i])
				continue
			}
			merged = append(merged, mergeSorted(chunks[i], chunks[i+1], cmp))
		}
		chunks = merged
	}
	copy(perm, chunks[0])
}

func mergeSorted(a, b []int, cmp func(x, y int) int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if cmp(a[i], b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
