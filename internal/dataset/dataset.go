// Package dataset loads per-comuna data series (a name column and a value
// column) from CSV or XLSX files.
package dataset

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Series is a data series keyed by comuna name. Names and Values are aligned.
type Series struct {
	Names  []string
	Values []float64
}

// Options selects the columns to read. Column names are matched
// case-insensitively against the header row.
type Options struct {
	NameColumn  string
	ValueColumn string
	// SheetName selects the XLSX sheet; the first sheet is used when empty.
	SheetName string
}

// Load reads a Series from path. The format follows the file extension:
// .xlsx for spreadsheets, anything else is parsed as CSV.
func Load(path string, opts Options) (Series, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{SheetName: opts.SheetName})
	default:
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return Series{}, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer func() { _ = f.Close() }()
		rows, err = ReadCSV(f, CSVOptions{TrimSpace: true})
	}
	if err != nil {
		return Series{}, err
	}

	s, err := FromRows(rows, opts)
	if err != nil {
		return Series{}, eris.Wrapf(err, "dataset: %s", path)
	}

	zap.L().Debug("dataset: loaded",
		zap.String("path", path),
		zap.Int("rows", len(s.Names)),
	)
	return s, nil
}

// FromRows builds a Series from a header row followed by data rows. Blank
// rows are skipped.
func FromRows(rows [][]string, opts Options) (Series, error) {
	if len(rows) == 0 {
		return Series{}, eris.New("dataset: no header row")
	}

	nameCol := orDefault(opts.NameColumn, "comuna")
	valueCol := orDefault(opts.ValueColumn, "value")

	header := rows[0]
	ni, vi := columnIndex(header, nameCol), columnIndex(header, valueCol)
	if ni < 0 {
		return Series{}, eris.Errorf("dataset: column %q not in header %v", nameCol, header)
	}
	if vi < 0 {
		return Series{}, eris.Errorf("dataset: column %q not in header %v", valueCol, header)
	}

	var s Series
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		if ni >= len(row) || vi >= len(row) {
			return Series{}, eris.Errorf("dataset: row %d has %d columns", i+2, len(row))
		}
		raw := strings.TrimSpace(row[vi])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Series{}, eris.Wrapf(err, "dataset: row %d value %q", i+2, raw)
		}
		s.Names = append(s.Names, strings.TrimSpace(row[ni]))
		s.Values = append(s.Values, v)
	}
	return s, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
