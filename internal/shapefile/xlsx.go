package shapefile

import (
	"encoding/hex"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// DefaultSheetName is the sheet written by WriteXLSX when none is given.
const DefaultSheetName = "features"

// MaxCellLength is the longest text a spreadsheet cell may hold.
const MaxCellLength = 32767

// GeometryFormat selects how the coords column is written.
type GeometryFormat string

// Geometry encodings for the coords column.
const (
	GeometryWKT GeometryFormat = "wkt"
	// GeometryWKB writes hex-encoded little-endian EWKB.
	GeometryWKB GeometryFormat = "wkb"
)

// XLSXOptions configures WriteXLSX.
type XLSXOptions struct {
	SheetName string         // default DefaultSheetName
	Geometry  GeometryFormat // default GeometryWKT
	SRID      int            // EWKB only; 0 writes no SRID
}

// WriteXLSX saves the table as a spreadsheet: a header row with every
// column, then one row per feature. Geometry text longer than MaxCellLength
// continues in the cells to the right of the coords column; readers join
// them back in order.
func (t *Table) WriteXLSX(path string, opts XLSXOptions) error {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	encode, err := geometryEncoder(opts)
	if err != nil {
		return err
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "shapefile: add sheet %q", sheetName)
	}

	header := sheet.AddRow()
	for _, col := range t.Columns() {
		header.AddCell().SetString(col)
	}

	for i, rec := range t.rows {
		row := sheet.AddRow()
		for _, v := range rec {
			row.AddCell().SetString(v)
		}
		coords, err := encode(t.shapes[i])
		if err != nil {
			return eris.Wrapf(err, "shapefile: row %d", i)
		}
		for _, chunk := range splitCell(coords, MaxCellLength) {
			row.AddCell().SetString(chunk)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "shapefile: save %s", path)
	}
	return nil
}

func geometryEncoder(opts XLSXOptions) (func(Shape) (string, error), error) {
	switch opts.Geometry {
	case "", GeometryWKT:
		return Shape.WKT, nil
	case GeometryWKB:
		return func(s Shape) (string, error) {
			b, err := EncodeWKB(s, opts.SRID)
			if err != nil {
				return "", err
			}
			return hex.EncodeToString(b), nil
		}, nil
	default:
		return nil, eris.Errorf("shapefile: unknown geometry format %q", opts.Geometry)
	}
}

// splitCell cuts s into pieces of at most n bytes. An empty s yields one
// empty piece. Geometry text is ASCII, so byte cuts never split a rune.
func splitCell(s string, n int) []string {
	if len(s) <= n {
		return []string{s}
	}
	out := make([]string, 0, len(s)/n+1)
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
