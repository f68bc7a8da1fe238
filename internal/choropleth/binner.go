package choropleth

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	// ErrInsufficientData means the data cannot be cut into NumBins distinct
	// quantile bins.
	ErrInsufficientData = eris.New("choropleth: insufficient data")

	// ErrMalformedInput means the data holds NaN or infinite values.
	ErrMalformedInput = eris.New("choropleth: malformed input")
)

// Result is the bin assignment of one data series.
type Result struct {
	Palette Palette
	// Edges are the NumBins+1 ascending bin boundaries.
	Edges []float64
	// Bins holds the bin label (0 = lowest) of each observation.
	Bins []int
	// Colors holds the palette color of each observation.
	Colors []string
}

// BinColors cuts data into NumBins quantile bins and maps every observation
// to the palette color of its bin. Colors and Bins are aligned with data.
func BinColors(data []float64, palette Palette) (Result, error) {
	if len(data) == 0 {
		return Result{}, eris.Wrap(ErrInsufficientData, "empty data")
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, eris.Wrapf(ErrMalformedInput, "data[%d] is %v", i, v)
		}
	}

	edges := QuantileEdges(data, NumBins)
	for k := 1; k < len(edges); k++ {
		if !(edges[k] > edges[k-1]) {
			return Result{}, eris.Wrapf(ErrInsufficientData,
				"bin edges %d and %d coincide at %g", k-1, k, edges[k])
		}
	}

	colors := palette.Colors()
	res := Result{
		Palette: palette,
		Edges:   edges,
		Bins:    make([]int, len(data)),
		Colors:  make([]string, len(data)),
	}
	for i, v := range data {
		b := binOf(edges, v)
		res.Bins[i] = b
		res.Colors[i] = colors[b]
	}

	zap.L().Debug("choropleth: binned",
		zap.Int("n", len(data)),
		zap.Stringer("palette", palette),
		zap.Float64s("edges", edges),
	)
	return res, nil
}

// Labels returns a human-readable range per bin, e.g. "(2.83, 4.67]". The
// lowest bin is closed on both sides.
func (r Result) Labels() []string {
	if len(r.Edges) < 2 {
		return nil
	}
	out := make([]string, len(r.Edges)-1)
	for k := range out {
		open := "("
		if k == 0 {
			open = "["
		}
		out[k] = fmt.Sprintf("%s%.4g, %.4g]", open, r.Edges[k], r.Edges[k+1])
	}
	return out
}
