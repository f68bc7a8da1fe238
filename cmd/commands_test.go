package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/comunas/internal/comuna"
	"github.com/sells-group/comunas/internal/config"
	"github.com/sells-group/comunas/internal/shapefile"
)

var fixtureNames = []string{
	"SANTIAGO", "PROVIDENCIA", "ÑUÑOA", "MAIPÚ", "LA FLORIDA", "PUENTE ALTO",
	"LAS CONDES", "PEÑALOLÉN", "LA REINA", "VITACURA", "RECOLETA", "CONCHALÍ",
}

func unitSquare(x, y float64) []shp.Point {
	return []shp.Point{{X: x, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}, {X: x + 1, Y: y}, {X: x, Y: y}}
}

// writeComunas writes the fixture comunas as a UTF-8 polygon shapefile and
// returns the .shp path.
func writeComunas(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "comunas.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField(comuna.DefaultNameColumn, 40)}))

	for i, name := range fixtureNames {
		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{unitSquare(float64(i%4), float64(i/4))}))
		n := w.Write(&poly)
		require.NoError(t, w.WriteAttribute(int(n), 0, name))
	}
	w.Close()

	// go-shp v0.1.1 names the attribute file "<base>dbf" without the dot.
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

func fixtureTable(t *testing.T) *shapefile.Table {
	t.Helper()
	records := make([][]string, len(fixtureNames))
	shapes := make([]shapefile.Shape, len(fixtureNames))
	for i, n := range fixtureNames {
		records[i] = []string{n}
		shapes[i] = shapefile.Shape{Type: shp.POLYGON, Parts: []int{0}, Points: []shapefile.Point{{X: float64(i), Y: 0}}}
	}
	tbl, err := shapefile.Tabulate(shapefile.New(
		[]shapefile.Field{{Name: comuna.DefaultNameColumn, Type: 'C', Size: 40}}, records, shapes))
	require.NoError(t, err)
	return tbl
}

func TestResolveTargets(t *testing.T) {
	tbl := fixtureTable(t)
	r := comuna.NewResolver(nil, "")

	ids, err := resolveTargets(tbl, r, []string{"3", "nunoa", " 11 ", "Penalolen"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 11, 7}, ids)
}

func TestResolveTargets_Errors(t *testing.T) {
	tbl := fixtureTable(t)
	r := comuna.NewResolver(nil, "")

	_, err := resolveTargets(tbl, r, []string{"12"})
	assert.Error(t, err)

	_, err = resolveTargets(tbl, r, []string{"-1"})
	assert.Error(t, err)

	_, err = resolveTargets(tbl, r, []string{"santiago", "atlantis"})
	assert.ErrorIs(t, err, comuna.ErrNotFound)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, splitAndTrim(" a, b c ,,d,"))
	assert.Nil(t, splitAndTrim(""))
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("-70.8, -70.4")
	require.NoError(t, err)
	assert.InDelta(t, -70.8, r.Min, 1e-12)
	assert.InDelta(t, -70.4, r.Max, 1e-12)

	for _, bad := range []string{"", "1", "1,2,3", "a,2", "1,b", "2,1", "1,1"} {
		_, err := parseRange(bad)
		assert.Error(t, err, "range %q", bad)
	}
}

func TestBinsCommand_PrintsBinsAndColors(t *testing.T) {
	out, err := execute(t, "bins", "-p", "default", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12")
	require.NoError(t, err)

	assert.Contains(t, out, "palette\tYlOrBr")
	assert.Contains(t, out, "1\t0\t#ffffd4")
	assert.Contains(t, out, "12\t5\t#993404")
}

func TestBinsCommand_RejectsBadValue(t *testing.T) {
	_, err := execute(t, "bins", "-p", "default", "1", "two")
	assert.Error(t, err)
}

func TestBinsCommand_TooFewDistinctValues(t *testing.T) {
	_, err := execute(t, "bins", "-p", "default", "1", "1", "1")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	path := writeComunas(t)

	out, err := execute(t, "resolve", "--shapefile", path, "nunoa", "Maipu")
	require.NoError(t, err)
	assert.Contains(t, out, "nunoa\t2\tÑUÑOA")
	assert.Contains(t, out, "Maipu\t3\tMAIPÚ")
}

func TestResolveCommand_NotFound(t *testing.T) {
	path := writeComunas(t)

	_, err := execute(t, "resolve", "--shapefile", path, "atlantis")
	assert.ErrorIs(t, err, comuna.ErrNotFound)
}

func TestTableCommand_Prints(t *testing.T) {
	path := writeComunas(t)

	out, err := execute(t, "table", "--shapefile", path, "--out", "", "--column", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(fixtureNames)+1)
	assert.Equal(t, "index\tNOM_COMUNA\tvertices", lines[0])
	assert.Equal(t, "2\tÑUÑOA\t5", lines[3])
}

func TestTableCommand_ExportsXLSX(t *testing.T) {
	path := writeComunas(t)
	out := filepath.Join(t.TempDir(), "comunas.xlsx")

	_, err := execute(t, "table", "--shapefile", path, "--out", out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestTableCommand_PrintsColumn(t *testing.T) {
	path := writeComunas(t)

	out, err := execute(t, "table", "--shapefile", path, "--out", "", "--column", "NOM_COMUNA")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(fixtureNames))
	assert.Equal(t, "3\tMAIPÚ", lines[3])

	_, err = execute(t, "table", "--shapefile", path, "--out", "", "--column", "NOMBRE")
	assert.Error(t, err)
}

func TestTableCommand_ExportsWKB(t *testing.T) {
	path := writeComunas(t)
	out := filepath.Join(t.TempDir(), "comunas.xlsx")

	_, err := execute(t, "table", "--shapefile", path, "--column", "", "--out", out,
		"--geometry", "wkb", "--srid", "4326", "--sheet", "comunas")
	require.NoError(t, err)

	f, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	sheet, ok := f.Sheet["comunas"]
	require.True(t, ok)
	// little-endian EWKB multipolygon with the SRID flag set
	assert.True(t, strings.HasPrefix(sheet.Rows[1].Cells[1].String(), "0106000020e6100000"))

	_, err = execute(t, "table", "--shapefile", path, "--out", out, "--geometry", "kml")
	assert.Error(t, err)

	_, err = execute(t, "table", "--shapefile", path, "--out", "", "--geometry", "wkt", "--srid", "0", "--sheet", "")
	require.NoError(t, err)
}

func TestNewResolver_RequiresNameColumn(t *testing.T) {
	tbl := fixtureTable(t)

	c := &config.Config{}
	c.Shapefile.NameColumn = "NOMBRE"
	_, err := newResolver(c, tbl)
	assert.ErrorContains(t, err, "NOMBRE")

	c.Shapefile.NameColumn = ""
	r, err := newResolver(c, tbl)
	require.NoError(t, err)
	assert.Equal(t, comuna.DefaultNameColumn, r.NameColumn)
}

func TestPlotDataCommand(t *testing.T) {
	path := writeComunas(t)
	dir := t.TempDir()

	data := "comuna,value\n"
	for i, n := range fixtureNames {
		data += strings.ToLower(n) + "," + strings.Repeat("1", i+1) + "\n"
	}
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))
	png := filepath.Join(dir, "data.png")

	_, err := execute(t, "plot", "data", "--shapefile", path, "--data", csvPath, "--out", png, "-p", "2")
	require.NoError(t, err)

	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlotHighlightCommand(t *testing.T) {
	path := writeComunas(t)
	png := filepath.Join(t.TempDir(), "highlight.png")

	_, err := execute(t, "plot", "highlight", "--shapefile", path, "--out", png,
		"--borders", "santiago,5", "nunoa", "providencia")
	require.NoError(t, err)

	_, err = os.Stat(png)
	require.NoError(t, err)
}

func TestPlotMapCommand_LimitsMustPair(t *testing.T) {
	path := writeComunas(t)

	_, err := execute(t, "plot", "map", "--shapefile", path, "--xlim", "0,2", "--ylim", "",
		"--out", filepath.Join(t.TempDir(), "map.png"))
	assert.Error(t, err)
}
