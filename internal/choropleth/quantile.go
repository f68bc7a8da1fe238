package choropleth

import (
	"math"
	"sort"
)

// quantile returns the q-th quantile of sorted data, interpolating linearly
// between the order statistics at floor(h) and ceil(h) with h = (n-1)q.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := q * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// QuantileEdges returns the bins+1 edges that split data into bins groups of
// equal count. data is not modified.
func QuantileEdges(data []float64, bins int) []float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	edges := make([]float64, bins+1)
	for k := 0; k <= bins; k++ {
		edges[k] = quantile(sorted, float64(k)/float64(bins))
	}
	// Pin the outer edges to the exact extremes.
	edges[0] = sorted[0]
	edges[bins] = sorted[len(sorted)-1]
	return edges
}

// binOf returns the right-closed bin of v; the lowest bin also holds edges[0].
func binOf(edges []float64, v float64) int {
	b := sort.SearchFloat64s(edges[1:], v)
	if b >= len(edges)-1 {
		b = len(edges) - 2
	}
	return b
}
