package choropleth

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestBinColors_TwelveValuesDefaultPalette(t *testing.T) {
	res, err := BinColors(seq(12), Default)
	require.NoError(t, err)

	require.Len(t, res.Edges, NumBins+1)
	require.Len(t, res.Colors, 12)
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, res.Bins)

	assert.Equal(t, res.Colors[0], res.Colors[1])
	assert.Equal(t, "#ffffd4", res.Colors[0])
	assert.Equal(t, res.Colors[10], res.Colors[11])
	assert.Equal(t, "#993404", res.Colors[11])

	assert.InDelta(t, 1.0, res.Edges[0], 1e-9)
	assert.InDelta(t, 2+5.0/6, res.Edges[1], 1e-9)
	assert.InDelta(t, 12.0, res.Edges[6], 1e-9)
}

func TestBinColors_EdgesAscending(t *testing.T) {
	data := []float64{3.2, 10, 0.5, 7, 7.5, 100, 42, 8, 1, 2, 9, 11, 15}
	res, err := BinColors(data, YlGnBu)
	require.NoError(t, err)

	assert.True(t, sort.Float64sAreSorted(res.Edges))
	assert.Equal(t, 0.5, res.Edges[0])
	assert.Equal(t, 100.0, res.Edges[NumBins])
}

func TestBinColors_EdgesBracketEachObservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]float64, 50)
	for i := range data {
		data[i] = rng.NormFloat64() * 10
	}

	res, err := BinColors(data, Purples)
	require.NoError(t, err)

	colors := Purples.Colors()
	for i, v := range data {
		b := res.Bins[i]
		if b == 0 {
			assert.GreaterOrEqual(t, v, res.Edges[0])
		} else {
			assert.Greater(t, v, res.Edges[b])
		}
		assert.LessOrEqual(t, v, res.Edges[b+1])
		assert.Equal(t, colors[b], res.Colors[i])
	}
}

func TestBinColors_PermutationInvariant(t *testing.T) {
	data := []float64{5, 1, 9, 3, 7, 2, 8, 4, 6, 10, 12, 11}
	base, err := BinColors(data, Greys)
	require.NoError(t, err)

	perm := rand.New(rand.NewSource(1)).Perm(len(data))
	shuffled := make([]float64, len(data))
	for i, p := range perm {
		shuffled[i] = data[p]
	}

	got, err := BinColors(shuffled, Greys)
	require.NoError(t, err)

	assert.Equal(t, base.Edges, got.Edges)
	for i, p := range perm {
		assert.Equal(t, base.Colors[p], got.Colors[i])
	}
}

func TestBinColors_RoughlyEqualCounts(t *testing.T) {
	res, err := BinColors(seq(60), Default)
	require.NoError(t, err)

	counts := make([]int, NumBins)
	for _, b := range res.Bins {
		counts[b]++
	}
	for _, c := range counts {
		assert.Equal(t, 10, c)
	}
}

func TestBinColors_AlertPalette(t *testing.T) {
	res, err := BinColors(seq(6), Alert)
	require.NoError(t, err)
	for _, c := range res.Colors {
		assert.Equal(t, "#ff0000", c)
	}
}

func TestBinColors_InsufficientData(t *testing.T) {
	cases := map[string][]float64{
		"empty":     nil,
		"single":    {4},
		"constant":  {2, 2, 2, 2, 2, 2, 2, 2},
		"two-level": {1, 1, 1, 1, 1, 1, 5, 5, 5, 5, 5, 5},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BinColors(data, Default)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInsufficientData))
		})
	}
}

func TestBinColors_NonFinite(t *testing.T) {
	_, err := BinColors([]float64{1, 2, math.NaN(), 4, 5, 6, 7}, Default)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	_, err = BinColors([]float64{1, 2, math.Inf(1), 4, 5, 6, 7}, Default)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestBinColors_DoesNotModifyInput(t *testing.T) {
	data := []float64{6, 5, 4, 3, 2, 1, 0}
	orig := append([]float64(nil), data...)
	_, err := BinColors(data, Default)
	require.NoError(t, err)
	assert.Equal(t, orig, data)
}

func TestResult_Labels(t *testing.T) {
	res, err := BinColors(seq(12), Default)
	require.NoError(t, err)

	labels := res.Labels()
	require.Len(t, labels, NumBins)
	assert.Equal(t, "[1, 2.833]", labels[0])
	assert.Equal(t, "(10.17, 12]", labels[5])
}
