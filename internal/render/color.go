package render

import (
	"encoding/hex"
	"image/color"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/image/colornames"
)

// shortColors are the single-letter color codes used in notebook plots.
var shortColors = map[string]color.Color{
	"b": color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	"g": color.RGBA{0x00, 0x80, 0x00, 0xff},
	"r": color.RGBA{0xff, 0x00, 0x00, 0xff},
	"c": color.RGBA{0x00, 0xbf, 0xbf, 0xff},
	"m": color.RGBA{0xbf, 0x00, 0xbf, 0xff},
	"y": color.RGBA{0xbf, 0xbf, 0x00, 0xff},
	"k": color.Black,
	"w": color.White,
}

// ParseColor accepts "#rrggbb", "#rrggbbaa", a single-letter code
// (b g r c m y k w) or an SVG/CSS color name such as "darkgreen".
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	name := strings.ToLower(s)
	if c, ok := shortColors[name]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, eris.Errorf("render: unknown color %q", s)
}

func parseHex(s string) (color.Color, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil {
		return nil, eris.Wrapf(err, "render: parse color %q", s)
	}

	switch len(b) {
	case 3:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
	case 4:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
	default:
		return nil, eris.Errorf("render: color %q must be #rrggbb or #rrggbbaa", s)
	}
}

// parseColors parses every entry of cs.
func parseColors(cs []string) ([]color.Color, error) {
	out := make([]color.Color, len(cs))
	for i, c := range cs {
		parsed, err := ParseColor(c)
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}
