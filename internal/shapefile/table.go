package shapefile

import (
	"github.com/rotisserie/eris"
)

// CoordsColumn is the name of the geometry column appended by Tabulate.
const CoordsColumn = "coords"

// ErrMalformedInput reports a shapefile whose attribute records and
// geometries do not line up.
var ErrMalformedInput = eris.New("shapefile: malformed input")

// Table is a feature table: one row per feature, in source order. The row
// index is the feature identifier used by the rest of the program.
type Table struct {
	fields []string
	index  map[string]int
	rows   [][]string
	shapes []Shape
}

// Tabulate converts src into a Table. The first field descriptor (the dBASE
// deletion flag) is dropped; the remaining names become columns, filled
// positionally from each record, and a coords column holds each feature's
// vertices unchanged.
func Tabulate(src Source) (*Table, error) {
	descs := src.Fields()
	if len(descs) > 0 {
		descs = descs[1:]
	}

	records := src.Records()
	shapes := src.Shapes()
	if len(records) != len(shapes) {
		return nil, eris.Wrapf(ErrMalformedInput,
			"%d attribute records but %d geometries", len(records), len(shapes))
	}

	fields := make([]string, len(descs))
	index := make(map[string]int, len(descs))
	for i, d := range descs {
		fields[i] = d.Name
		if _, dup := index[d.Name]; !dup {
			index[d.Name] = i
		}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		if len(rec) != len(fields) {
			return nil, eris.Wrapf(ErrMalformedInput,
				"record %d has %d values, want %d", i, len(rec), len(fields))
		}
		rows[i] = append([]string(nil), rec...)
	}

	return &Table{
		fields: fields,
		index:  index,
		rows:   rows,
		shapes: append([]Shape(nil), shapes...),
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Fields returns the attribute column names, without coords.
func (t *Table) Fields() []string { return append([]string(nil), t.fields...) }

// Columns returns every column name: the attribute fields followed by coords.
func (t *Table) Columns() []string {
	return append(t.Fields(), CoordsColumn)
}

// HasColumn reports whether name is an attribute column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the attribute value of column name in row i.
func (t *Table) Value(i int, name string) (string, error) {
	col, ok := t.index[name]
	if !ok {
		return "", eris.Errorf("shapefile: unknown column %q", name)
	}
	if i < 0 || i >= len(t.rows) {
		return "", eris.Errorf("shapefile: row %d out of range [0,%d)", i, len(t.rows))
	}
	return t.rows[i][col], nil
}

// Row returns a copy of the attribute values of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Column returns every value of the named attribute column.
func (t *Table) Column(name string) ([]string, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, eris.Errorf("shapefile: unknown column %q", name)
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[col]
	}
	return out, nil
}

// Coords returns a copy of the vertex list of row i.
func (t *Table) Coords(i int) []Point {
	return append([]Point(nil), t.shapes[i].Points...)
}

// Shape returns the full geometry (with parts) of row i. Its slices are
// shared with the table; callers must not modify them.
func (t *Table) Shape(i int) Shape {
	return t.shapes[i]
}

// Index returns the first row whose column name equals value, or -1.
func (t *Table) Index(name, value string) (int, error) {
	col, ok := t.index[name]
	if !ok {
		return -1, eris.Errorf("shapefile: unknown column %q", name)
	}
	for i, r := range t.rows {
		if r[col] == value {
			return i, nil
		}
	}
	return -1, nil
}
