// Package rank implements the ranking routine consumed by vector views.
package rank

import (
	"cmp"
	"slices"
)

// Natural returns zero-based natural ranks for values, in input order.
// Tied values share the average of the ranks they span. NaN sorts lowest,
// per cmp.Compare.
func Natural(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// Average rank across the tie run [i, j).
		avg := float64(i+j-1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}
