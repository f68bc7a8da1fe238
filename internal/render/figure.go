// Package render draws feature tables as maps: outlines, filled comunas,
// highlighted borders, id annotations and choropleth tones.
package render

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Range is an inclusive axis range.
type Range struct {
	Min, Max float64
}

// Figure holds the per-call drawing settings. It replaces module-wide plot
// defaults: every renderer takes one explicitly.
type Figure struct {
	Width, Height vg.Length
	Title         string
	TitleSize     vg.Length
	LabelSize     vg.Length
	// XLim and YLim restrict the visible area when both are set.
	XLim, YLim *Range
	// Format is the image format used when the output path has no
	// extension ("png", "svg", "pdf", ...).
	Format       string
	OutlineColor string
}

// DefaultFigure returns an 8x8 inch png figure.
func DefaultFigure() Figure {
	return Figure{
		Width:        8 * vg.Inch,
		Height:       8 * vg.Inch,
		TitleSize:    vg.Points(16),
		LabelSize:    vg.Points(10),
		Format:       "png",
		OutlineColor: "k",
	}
}

func (f Figure) limited() bool {
	return f.XLim != nil && f.YLim != nil
}

// newPlot creates a plot with the figure title and hidden axes.
func newPlot(fig Figure) *plot.Plot {
	p := plot.New()
	p.Title.Text = fig.Title
	if fig.TitleSize > 0 {
		p.Title.TextStyle.Font.Size = fig.TitleSize
	}
	p.HideAxes()
	return p
}

// finish applies axis limits, or equalizes the aspect ratio of the data
// range when no limits are set.
func finish(p *plot.Plot, fig Figure) {
	if fig.limited() {
		p.X.Min, p.X.Max = fig.XLim.Min, fig.XLim.Max
		p.Y.Min, p.Y.Max = fig.YLim.Min, fig.YLim.Max
		return
	}
	equalAspect(p, fig)
}

// equalAspect widens the narrower axis so one data unit has the same length
// on both axes.
func equalAspect(p *plot.Plot, fig Figure) {
	if fig.Width <= 0 || fig.Height <= 0 {
		return
	}
	dx := p.X.Max - p.X.Min
	dy := p.Y.Max - p.Y.Min
	if dx <= 0 || dy <= 0 {
		return
	}

	ratio := float64(fig.Width) / float64(fig.Height)
	if dx/dy < ratio {
		grow := (dy*ratio - dx) / 2
		p.X.Min -= grow
		p.X.Max += grow
	} else {
		grow := (dx/ratio - dy) / 2
		p.Y.Min -= grow
		p.Y.Max += grow
	}
}

// OutputPath returns path, or a file name derived from the figure title
// when path is empty. A path without extension gets the figure format.
func OutputPath(fig Figure, path string) (string, error) {
	if path == "" {
		name := strings.TrimSpace(fig.Title)
		if name == "" {
			return "", eris.New("render: no output path and no title to derive one from")
		}
		path = strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(name)
	}
	if filepath.Ext(path) == "" {
		format := fig.Format
		if format == "" {
			format = "png"
		}
		path += "." + format
	}
	return path, nil
}

// Save writes the plot to path (see OutputPath) and returns the file written.
func Save(p *plot.Plot, fig Figure, path string) (string, error) {
	out, err := OutputPath(fig, path)
	if err != nil {
		return "", err
	}
	if err := p.Save(fig.Width, fig.Height, out); err != nil {
		return "", eris.Wrapf(err, "render: save %s", out)
	}
	zap.L().Info("render: saved figure", zap.String("path", out), zap.String("title", fig.Title))
	return out, nil
}
