package axis

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tabgo/core"
)

func cmpStrings(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func TestSortIsStable(t *testing.T) {
	// Keys sharing the same comparison bucket keep insertion order.
	ix := MustNew([]string{"b1", "a1", "b2", "a2", "b3"})
	ix.Sort(false, func(a, b string) int { return cmpStrings(a[:1], b[:1]) })
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "b3"}, ix.KeySlice())
}

func TestChainedSortsCompose(t *testing.T) {
	ix := MustNew([]string{"b2", "a1", "b1", "a2"})
	// Secondary key first, then primary: a stable primary sort keeps
	// the secondary ordering within equal runs.
	ix.Sort(false, func(a, b string) int { return cmpStrings(a[1:], b[1:]) })
	ix.Sort(false, func(a, b string) int { return cmpStrings(a[:1], b[:1]) })
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, ix.KeySlice())
}

func TestSortByCoordinate(t *testing.T) {
	ix := MustNew([]string{"x", "y", "z"})
	ix.SortByCoordinate(false, func(a, b core.Coordinate) int { return int(b - a) })
	assert.Equal(t, []string{"z", "y", "x"}, ix.KeySlice())
}

func TestParallelSortMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := parallelSortThreshold * 2
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	seq := MustNew(keys)
	par := MustNew(keys)

	// Bucketed comparator leaves plenty of ties for the stability
	// tie-break to resolve.
	cmp := func(a, b int) int { return a%7 - b%7 }
	seq.Sort(false, cmp)
	par.Sort(true, cmp)

	require.Equal(t, seq.KeySlice(), par.KeySlice())
}

func TestSortLargeRoundTrip(t *testing.T) {
	n := parallelSortThreshold + 100
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%06d", (i*7919)%n)
	}
	ix := MustNew(keys)
	ix.Sort(true, cmpStrings)

	got := ix.KeySlice()
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1], got[i])
	}

	// Every coordinate is still reachable through its key.
	for _, k := range got {
		_, err := ix.CoordinateOf(k)
		require.NoError(t, err)
	}
}
