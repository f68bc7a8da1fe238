package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/sells-group/comunas/internal/choropleth"
)

var swatchLabel = lipgloss.NewStyle().PaddingLeft(1)

// Swatch renders the palette as terminal color blocks, one line per bin,
// each followed by the bin number and hex code. On terminals without color
// support only the labels remain.
func Swatch(p choropleth.Palette) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", p, int(p))
	for k, c := range p.Colors() {
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(terminalHex(c))).
			Width(6).
			Render("")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, block, swatchLabel.Render(fmt.Sprintf("%d %s", k, c))))
		b.WriteByte('\n')
	}
	return b.String()
}

// terminalHex drops the alpha channel, which terminals cannot show.
func terminalHex(c string) string {
	if len(c) == 9 && strings.HasPrefix(c, "#") {
		return c[:7]
	}
	return c
}

// PalettePlot draws the palette as a row of squares, lowest bin on the left.
func PalettePlot(p choropleth.Palette, fig Figure) (*plot.Plot, error) {
	colors, err := parseColors(p.Colors())
	if err != nil {
		return nil, err
	}
	if fig.Title == "" {
		fig.Title = p.String()
	}

	pl := newPlot(fig)
	for k, c := range colors {
		x := float64(k)
		sq, err := plotter.NewPolygon(plotter.XYs{{X: x, Y: 0}, {X: x + 1, Y: 0}, {X: x + 1, Y: 1}, {X: x, Y: 1}})
		if err != nil {
			return nil, eris.Wrap(err, "render: palette square")
		}
		sq.Color = c
		sq.LineStyle.Color = c
		pl.Add(sq)
	}
	pl.X.Min, pl.X.Max = 0, float64(len(colors))
	pl.Y.Min, pl.Y.Max = 0, 1
	return pl, nil
}
