// Package shapefile reads ESRI shapefiles into memory and converts them into
// feature tables: one row per feature, attribute columns plus vertex lists.
package shapefile

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DeletionFlag is the name of the reserved first column of every dBASE
// record. It is reported by Shapefile.Fields and dropped by Tabulate.
const DeletionFlag = "DeletionFlag"

// Field describes one attribute column of the .dbf table.
type Field struct {
	Name      string
	Type      byte
	Size      uint8
	Precision uint8
}

// Point is a single (x, y) vertex.
type Point struct {
	X, Y float64
}

// Shape is one feature geometry. Parts holds the starting vertex index of
// each ring (polygons) or path (polylines); a point shape has one part.
type Shape struct {
	Type   shp.ShapeType
	Parts  []int
	Points []Point
}

// Source is anything that exposes shapefile-like field descriptors,
// attribute records and geometries. Records and shapes are aligned by index.
type Source interface {
	Fields() []Field
	Records() [][]string
	Shapes() []Shape
}

// Shapefile is a fully loaded shapefile. It implements Source.
type Shapefile struct {
	Path    string
	fields  []Field
	records [][]string
	shapes  []Shape
}

// Fields returns the field descriptors, starting with the DeletionFlag column.
func (s *Shapefile) Fields() []Field { return s.fields }

// Records returns the attribute values of every feature.
func (s *Shapefile) Records() [][]string { return s.records }

// Shapes returns the geometry of every feature.
func (s *Shapefile) Shapes() []Shape { return s.shapes }

// New builds an in-memory Shapefile. fields must not include DeletionFlag;
// it is prepended the same way Open does.
func New(fields []Field, records [][]string, shapes []Shape) *Shapefile {
	all := make([]Field, 0, len(fields)+1)
	all = append(all, Field{Name: DeletionFlag, Type: 'C', Size: 1})
	all = append(all, fields...)
	return &Shapefile{fields: all, records: records, shapes: shapes}
}

// Open reads the shapefile at path (and its sibling .dbf) into memory.
// Attribute text is decoded with the named encoding (an IANA/WHATWG label
// such as "utf-8" or "latin1"); an empty name means UTF-8, falling back to
// windows-1252 for values that are not valid UTF-8.
func Open(path, encodingName string) (*Shapefile, error) {
	dec, err := decoderFor(encodingName)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(path), ".shp") {
		return nil, eris.Errorf("shapefile: %s is not a .shp file", path)
	}
	// go-shp reads the sibling .dbf lazily and does not report its absence.
	dbf := path[:len(path)-3] + "dbf"
	if _, err := os.Stat(dbf); err != nil {
		return nil, eris.Wrapf(err, "shapefile: attributes %s", dbf)
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "shapefile: open %s", path)
	}
	defer func() { _ = reader.Close() }()

	log := zap.L().With(zap.String("component", "shapefile"), zap.String("path", path))

	raw := reader.Fields()
	fields := make([]Field, 0, len(raw))
	for _, f := range raw {
		fields = append(fields, Field{
			Name:      strings.TrimRight(f.String(), "\x00"),
			Type:      f.Fieldtype,
			Size:      f.Size,
			Precision: f.Precision,
		})
	}

	var (
		records [][]string
		shapes  []Shape
		skipped int
	)
	for reader.Next() {
		_, s := reader.Shape()

		rec := make([]string, len(fields))
		for i := range fields {
			val := strings.TrimRight(reader.Attribute(i), "\x00")
			rec[i] = dec(strings.TrimSpace(val))
		}
		records = append(records, rec)

		shape, ok := convertShape(s)
		if !ok {
			skipped++
		}
		shapes = append(shapes, shape)
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "shapefile: read %s", path)
	}

	if skipped > 0 {
		log.Debug("shapefile: unsupported shapes read as empty", zap.Int("skipped", skipped))
	}
	log.Debug("shapefile: loaded",
		zap.Int("fields", len(fields)),
		zap.Int("features", len(shapes)),
	)

	sf := New(fields, records, shapes)
	sf.Path = path
	return sf, nil
}

func decoderFor(name string) (func(string) string, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		fallback, _ := htmlindex.Get("windows-1252")
		return func(s string) string {
			if utf8.ValidString(s) {
				return s
			}
			return decodeWith(fallback, s)
		}, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, eris.Wrapf(err, "shapefile: unknown encoding %q", name)
	}
	return func(s string) string { return decodeWith(enc, s) }, nil
}

func decodeWith(enc encoding.Encoding, s string) string {
	out, err := enc.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

// convertShape copies a go-shp geometry into a Shape. Null and unsupported
// geometries become an empty Shape; ok is false only for unsupported types.
func convertShape(s shp.Shape) (Shape, bool) {
	switch g := s.(type) {
	case nil:
		return Shape{Type: shp.NULL}, true
	case *shp.Null:
		return Shape{Type: shp.NULL}, true
	case *shp.Point:
		return Shape{Type: shp.POINT, Parts: []int{0}, Points: []Point{{g.X, g.Y}}}, true
	case *shp.MultiPoint:
		return Shape{Type: shp.MULTIPOINT, Parts: []int{0}, Points: copyPoints(g.Points)}, true
	case *shp.PolyLine:
		return Shape{Type: shp.POLYLINE, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	case *shp.Polygon:
		return Shape{Type: shp.POLYGON, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	case *shp.PolyLineZ:
		return Shape{Type: shp.POLYLINE, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	case *shp.PolygonZ:
		return Shape{Type: shp.POLYGON, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	case *shp.PolyLineM:
		return Shape{Type: shp.POLYLINE, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	case *shp.PolygonM:
		return Shape{Type: shp.POLYGON, Parts: copyParts(g.Parts), Points: copyPoints(g.Points)}, true
	default:
		return Shape{Type: shp.NULL}, false
	}
}

func copyParts(parts []int32) []int {
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i] = int(p)
	}
	return out
}

func copyPoints(points []shp.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}
