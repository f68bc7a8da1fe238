package shapefile

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Rings splits the vertices into their parts. A shape without parts is a
// single ring.
func (s Shape) Rings() [][]Point {
	if len(s.Points) == 0 {
		return nil
	}
	if len(s.Parts) <= 1 {
		return [][]Point{s.Points}
	}

	rings := make([][]Point, 0, len(s.Parts))
	for i, start := range s.Parts {
		end := len(s.Points)
		if i+1 < len(s.Parts) {
			end = s.Parts[i+1]
		}
		if start < 0 || start > end || end > len(s.Points) {
			zap.L().Debug("shapefile: skipping ring with bad bounds",
				zap.Int("part", i), zap.Int("start", start), zap.Int("end", end))
			continue
		}
		rings = append(rings, s.Points[start:end])
	}
	return rings
}

// XY returns the x and y coordinates as separate slices.
func (s Shape) XY() (xs, ys []float64) {
	xs = make([]float64, len(s.Points))
	ys = make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// Bounds returns the bounding box of all vertices. ok is false for an empty
// shape.
func (s Shape) Bounds() (box Box, ok bool) {
	if len(s.Points) == 0 {
		return Box{}, false
	}
	xs, ys := s.XY()
	return Box{
		MinX: floats.Min(xs),
		MinY: floats.Min(ys),
		MaxX: floats.Max(xs),
		MaxY: floats.Max(ys),
	}, true
}

// Centroid returns the arithmetic mean of the vertices. It is the anchor used
// for map annotations, not an area-weighted centroid.
func (s Shape) Centroid() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	xs, ys := s.XY()
	return Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, true
}

// Geometry converts the shape to a go-geom geometry: polygons become a
// MultiPolygon (one polygon per ring), polylines a MultiLineString and point
// shapes a Point or MultiPoint. Returns nil for an empty shape.
func (s Shape) Geometry() geom.T {
	if len(s.Points) == 0 {
		return nil
	}

	switch s.Type {
	case shp.POINT:
		return geom.NewPointFlat(geom.XY, []float64{s.Points[0].X, s.Points[0].Y})
	case shp.MULTIPOINT:
		return geom.NewMultiPointFlat(geom.XY, flatCoords(s.Points))
	case shp.POLYLINE:
		return s.multiLineString()
	default:
		return s.multiPolygon()
	}
}

func (s Shape) multiLineString() geom.T {
	mls := geom.NewMultiLineString(geom.XY)
	for i, ring := range s.Rings() {
		ls := geom.NewLineStringFlat(geom.XY, flatCoords(ring))
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("shapefile: skipping malformed linestring part", zap.Int("part", i), zap.Error(err))
			continue
		}
	}
	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

func (s Shape) multiPolygon() geom.T {
	mp := geom.NewMultiPolygon(geom.XY)
	for i, ring := range s.Rings() {
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flatCoords(ring))); err != nil {
			zap.L().Debug("shapefile: skipping malformed polygon ring", zap.Int("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("shapefile: skipping malformed polygon part", zap.Int("part", i), zap.Error(err))
			continue
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// WKT renders the shape as well-known text. An empty shape renders as "".
func (s Shape) WKT() (string, error) {
	g := s.Geometry()
	if g == nil {
		return "", nil
	}
	out, err := wkt.Marshal(g)
	if err != nil {
		return "", eris.Wrap(err, "shapefile: encode WKT")
	}
	return out, nil
}

// EncodeWKB converts the shape to little-endian EWKB tagged with srid.
// Returns nil, nil for an empty shape.
func EncodeWKB(s Shape, srid int) ([]byte, error) {
	g := s.Geometry()
	if g == nil {
		return nil, nil
	}

	var tagged geom.T
	switch t := g.(type) {
	case *geom.Point:
		tagged = t.SetSRID(srid)
	case *geom.MultiPoint:
		tagged = t.SetSRID(srid)
	case *geom.MultiLineString:
		tagged = t.SetSRID(srid)
	case *geom.MultiPolygon:
		tagged = t.SetSRID(srid)
	default:
		tagged = g
	}

	data, err := ewkb.Marshal(tagged, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "shapefile: encode WKB")
	}
	return data, nil
}

// flatCoords converts vertices to flat coordinate pairs for go-geom.
func flatCoords(points []Point) []float64 {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}
