package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/comunas/internal/choropleth"
	"github.com/sells-group/comunas/internal/comuna"
	"github.com/sells-group/comunas/internal/shapefile"
)

// BorderWidth is the stroke width of highlighted borders.
var BorderWidth = vg.Points(3)

// MapOptions configures Map.
type MapOptions struct {
	// Start is the number printed on the first feature; later features count
	// up from it.
	Start int
	// Highlight lists features drawn with a thick red outline.
	Highlight []int
}

// HighlightOptions configures Highlight.
type HighlightOptions struct {
	Fill        []int
	FillColor   string
	Borders     []int
	BorderColor string
	Annotate    bool
}

func checkID(table *shapefile.Table, id int) error {
	if id < 0 || id >= table.Len() {
		return eris.Errorf("render: feature %d out of range [0,%d)", id, table.Len())
	}
	return nil
}

func ringXYs(ring []shapefile.Point) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, p := range ring {
		xys[i].X, xys[i].Y = p.X, p.Y
	}
	return xys
}

// addOutline draws every ring of s as a line.
func addOutline(p *plot.Plot, s shapefile.Shape, c color.Color, width vg.Length) error {
	for _, ring := range s.Rings() {
		if len(ring) == 0 {
			continue
		}
		l, err := plotter.NewLine(ringXYs(ring))
		if err != nil {
			return eris.Wrap(err, "render: outline")
		}
		l.Color = c
		l.Width = width
		p.Add(l)
	}
	return nil
}

// addOutlines draws all features of the table.
func addOutlines(p *plot.Plot, table *shapefile.Table, c color.Color) error {
	for i := 0; i < table.Len(); i++ {
		if err := addOutline(p, table.Shape(i), c, vg.Points(1)); err != nil {
			return eris.Wrapf(err, "feature %d", i)
		}
	}
	return nil
}

// addFill fills every ring of s with c.
func addFill(p *plot.Plot, s shapefile.Shape, c color.Color) error {
	rings := s.Rings()
	if len(rings) == 0 {
		return nil
	}
	xyers := make([]plotter.XYer, len(rings))
	for i, r := range rings {
		xyers[i] = ringXYs(r)
	}
	poly, err := plotter.NewPolygon(xyers...)
	if err != nil {
		return eris.Wrap(err, "render: fill")
	}
	poly.Color = c
	poly.LineStyle.Color = c
	p.Add(poly)
	return nil
}

// addLabels writes text at the vertex mean of each feature in ids.
func addLabels(p *plot.Plot, table *shapefile.Table, ids []int, texts []string, size vg.Length) error {
	var (
		xys    plotter.XYs
		labels []string
	)
	for i, id := range ids {
		c, ok := table.Shape(id).Centroid()
		if !ok {
			continue
		}
		xys = append(xys, plotter.XY{X: c.X, Y: c.Y})
		labels = append(labels, texts[i])
	}
	if len(xys) == 0 {
		return nil
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return eris.Wrap(err, "render: labels")
	}
	for i := range l.TextStyle {
		if size > 0 {
			l.TextStyle[i].Font.Size = size
		}
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(l)
	return nil
}

func idLabels(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}

func outlineColor(fig Figure) (color.Color, error) {
	if fig.OutlineColor == "" {
		return color.Black, nil
	}
	return ParseColor(fig.OutlineColor)
}

// Shape draws a single feature. The title is fig.Title (or label when the
// figure is untitled) followed by the vertex mean. Without axis limits the
// horizontal range is the feature's bounds and only the vertical range is
// widened to keep the aspect ratio.
func Shape(table *shapefile.Table, id int, label string, fig Figure) (*plot.Plot, error) {
	if err := checkID(table, id); err != nil {
		return nil, err
	}
	s := table.Shape(id)
	box, ok := s.Bounds()
	if !ok {
		return nil, eris.Errorf("render: feature %d has no vertices", id)
	}
	c, _ := s.Centroid()

	if fig.Title != "" {
		label = fig.Title
	}
	fig.Title = fmt.Sprintf("%s (%g, %g)", label, c.X, c.Y)
	p := newPlot(fig)
	if err := addOutline(p, s, plotter.DefaultLineStyle.Color, vg.Points(1)); err != nil {
		return nil, err
	}

	if fig.limited() {
		finish(p, fig)
		return p, nil
	}
	p.X.Min, p.X.Max = box.MinX, box.MaxX
	p.Y.Min, p.Y.Max = box.MinY, box.MaxY
	fitY(p, fig)
	return p, nil
}

// fitY widens the vertical range so one data unit has the same length on
// both axes. The horizontal range is left as is, so shapes taller than the
// figure are drawn squeezed rather than cropped.
func fitY(p *plot.Plot, fig Figure) {
	if fig.Width <= 0 || fig.Height <= 0 {
		return
	}
	dx := p.X.Max - p.X.Min
	dy := p.Y.Max - p.Y.Min
	if dx <= 0 || dy <= 0 {
		return
	}
	want := dx * float64(fig.Height) / float64(fig.Width)
	if want > dy {
		grow := (want - dy) / 2
		p.Y.Min -= grow
		p.Y.Max += grow
	}
}

// Map draws every feature outline. Without axis limits each feature is
// labelled with its running number starting at opts.Start.
func Map(table *shapefile.Table, opts MapOptions, fig Figure) (*plot.Plot, error) {
	for _, id := range opts.Highlight {
		if err := checkID(table, id); err != nil {
			return nil, err
		}
	}
	oc, err := outlineColor(fig)
	if err != nil {
		return nil, err
	}

	p := newPlot(fig)
	if err := addOutlines(p, table, oc); err != nil {
		return nil, err
	}

	if !fig.limited() {
		ids := make([]int, table.Len())
		texts := make([]string, table.Len())
		for i := range ids {
			ids[i] = i
			texts[i] = strconv.Itoa(opts.Start + i)
		}
		if err := addLabels(p, table, ids, texts, fig.LabelSize); err != nil {
			return nil, err
		}
	}

	red, _ := ParseColor("r")
	for _, id := range opts.Highlight {
		if err := addOutline(p, table.Shape(id), red, BorderWidth); err != nil {
			return nil, err
		}
	}

	finish(p, fig)
	return p, nil
}

// Highlight draws every outline, fills opts.Fill with opts.FillColor
// (optionally numbering them) and redraws opts.Borders with a thick border.
func Highlight(table *shapefile.Table, opts HighlightOptions, fig Figure) (*plot.Plot, error) {
	for _, id := range append(append([]int(nil), opts.Fill...), opts.Borders...) {
		if err := checkID(table, id); err != nil {
			return nil, err
		}
	}

	oc, err := outlineColor(fig)
	if err != nil {
		return nil, err
	}
	fill, err := ParseColor(orDefault(opts.FillColor, "g"))
	if err != nil {
		return nil, err
	}
	border, err := ParseColor(orDefault(opts.BorderColor, "darkgreen"))
	if err != nil {
		return nil, err
	}

	p := newPlot(fig)
	if err := addOutlines(p, table, oc); err != nil {
		return nil, err
	}

	for _, id := range opts.Fill {
		if err := addFill(p, table.Shape(id), fill); err != nil {
			return nil, err
		}
	}
	if opts.Annotate {
		if err := addLabels(p, table, opts.Fill, idLabels(opts.Fill), fig.LabelSize); err != nil {
			return nil, err
		}
	}

	for _, id := range opts.Borders {
		if err := addOutline(p, table.Shape(id), border, BorderWidth); err != nil {
			return nil, err
		}
	}

	finish(p, fig)
	return p, nil
}

// Tone fills each feature in ids with the color binned for it: ids[i] takes
// res.Colors[i]. A legend lists the bin ranges.
func Tone(table *shapefile.Table, ids []int, res choropleth.Result, showIDs bool, fig Figure) (*plot.Plot, error) {
	if len(ids) != len(res.Colors) {
		return nil, eris.Wrapf(shapefile.ErrMalformedInput,
			"render: %d features but %d colors", len(ids), len(res.Colors))
	}
	for _, id := range ids {
		if err := checkID(table, id); err != nil {
			return nil, err
		}
	}

	oc, err := outlineColor(fig)
	if err != nil {
		return nil, err
	}
	colors, err := parseColors(res.Colors)
	if err != nil {
		return nil, err
	}

	p := newPlot(fig)
	if err := addOutlines(p, table, oc); err != nil {
		return nil, err
	}
	for i, id := range ids {
		if err := addFill(p, table.Shape(id), colors[i]); err != nil {
			return nil, err
		}
	}
	if showIDs {
		if err := addLabels(p, table, ids, idLabels(ids), fig.LabelSize); err != nil {
			return nil, err
		}
	}
	if err := addLegend(p, res); err != nil {
		return nil, err
	}

	finish(p, fig)
	return p, nil
}

func addLegend(p *plot.Plot, res choropleth.Result) error {
	palette, err := parseColors(res.Palette.Colors())
	if err != nil {
		return err
	}
	for k, label := range res.Labels() {
		thumb, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
		if err != nil {
			return eris.Wrap(err, "render: legend")
		}
		thumb.Color = palette[k]
		thumb.LineStyle.Width = 0
		p.Legend.Add(label, thumb)
	}
	p.Legend.Top = true
	return nil
}

// ComunasData bins data with palette, resolves each name to a feature and
// draws the tone map. names[i] is colored by data[i].
func ComunasData(table *shapefile.Table, resolver *comuna.Resolver, names []string, data []float64,
	palette choropleth.Palette, showIDs bool, fig Figure,
) (*plot.Plot, choropleth.Result, error) {
	if len(names) != len(data) {
		return nil, choropleth.Result{}, eris.Wrapf(shapefile.ErrMalformedInput,
			"render: %d names but %d values", len(names), len(data))
	}

	res, err := choropleth.BinColors(data, palette)
	if err != nil {
		return nil, choropleth.Result{}, err
	}
	ids, err := resolver.ResolveAll(table, names)
	if err != nil {
		return nil, choropleth.Result{}, err
	}

	zap.L().Debug("render: comunas data",
		zap.Int("features", len(ids)),
		zap.Stringer("palette", palette),
	)

	p, err := Tone(table, ids, res, showIDs, fig)
	if err != nil {
		return nil, choropleth.Result{}, err
	}
	return p, res, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
