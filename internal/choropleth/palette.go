// Package choropleth splits a data series into quantile bins and assigns
// each observation a color from a fixed six-color palette.
package choropleth

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// NumBins is the number of quantile bins and the length of every palette.
const NumBins = 6

// Palette selects one of the fixed color sequences. The numeric values are
// the selectors accepted on the command line.
type Palette int

// Known palettes. Any other value selects Default.
const (
	Default Palette = 0
	Purples Palette = 1
	YlGnBu  Palette = 2
	Greys   Palette = 3
	Alert   Palette = 9
)

var palettes = map[Palette][NumBins]string{
	Purples: {"#dadaebFF", "#bcbddcF0", "#9e9ac8F0", "#807dbaF0", "#6a51a3F0", "#54278fF0"},
	YlGnBu:  {"#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494"},
	Greys:   {"#f7f7f7", "#d9d9d9", "#bdbdbd", "#969696", "#636363", "#252525"},
	Alert:   {"#ff0000", "#ff0000", "#ff0000", "#ff0000", "#ff0000", "#ff0000"},
	Default: {"#ffffd4", "#fee391", "#fec44f", "#fe9929", "#d95f0e", "#993404"},
}

var paletteNames = map[Palette]string{
	Purples: "Purples",
	YlGnBu:  "YlGnBu",
	Greys:   "Greys",
	Alert:   "Alert",
	Default: "YlOrBr",
}

// Colors returns the six colors of p, lowest bin first.
func (p Palette) Colors() []string {
	c, ok := palettes[p]
	if !ok {
		c = palettes[Default]
	}
	return c[:]
}

// String returns the color scheme name.
func (p Palette) String() string {
	if n, ok := paletteNames[p]; ok {
		return n
	}
	return paletteNames[Default]
}

// ParsePalette accepts a numeric selector ("1", "2", "3", "9"), a scheme
// name ("purples", "ylgnbu", "greys", "alert", "ylorbr") or "default".
func ParsePalette(s string) (Palette, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default", "ylorbr", "0":
		return Default, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		p := Palette(n)
		if _, ok := palettes[p]; ok {
			return p, nil
		}
		return Default, eris.Errorf("choropleth: unknown palette %d", n)
	}

	for p, name := range paletteNames {
		if strings.ToLower(name) == s {
			return p, nil
		}
	}
	return Default, eris.Errorf("choropleth: unknown palette %q", s)
}
