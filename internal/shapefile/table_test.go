package shapefile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSource() *Shapefile {
	fields := []Field{
		{Name: "NOM_COMUNA", Type: 'C', Size: 40},
		{Name: "COD_COMUNA", Type: 'C', Size: 5},
	}
	records := [][]string{
		{"MAIPÚ", "13119"},
		{"ÑUÑOA", "13120"},
		{"SANTIAGO", "13101"},
	}
	shapes := []Shape{
		{Type: shp.POLYGON, Parts: []int{0}, Points: []Point{{0, 0}, {0, 1}, {1, 1}, {0, 0}}},
		{Type: shp.POLYGON, Parts: []int{0}, Points: []Point{{2, 2}, {2, 3}, {3, 3}, {2, 2}}},
		{Type: shp.POLYGON, Parts: []int{0}, Points: []Point{{5, 5}, {5, 6}, {6, 6}, {5, 5}}},
	}
	return New(fields, records, shapes)
}

func TestTabulate_Shape(t *testing.T) {
	src := sampleSource()

	tbl, err := Tabulate(src)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"NOM_COMUNA", "COD_COMUNA", "coords"}, tbl.Columns())
	assert.Len(t, tbl.Columns(), len(src.Fields())-1+1)
}

func TestTabulate_DropsReservedField(t *testing.T) {
	tbl, err := Tabulate(sampleSource())
	require.NoError(t, err)

	assert.False(t, tbl.HasColumn(DeletionFlag))
	assert.True(t, tbl.HasColumn("NOM_COMUNA"))
}

func TestTabulate_PreservesRowOrder(t *testing.T) {
	src := sampleSource()
	tbl, err := Tabulate(src)
	require.NoError(t, err)

	for i, s := range src.Shapes() {
		if diff := cmp.Diff(s.Points, tbl.Coords(i)); diff != "" {
			t.Errorf("coords[%d] mismatch (-want +got):\n%s", i, diff)
		}
	}

	names, err := tbl.Column("NOM_COMUNA")
	require.NoError(t, err)
	assert.Equal(t, []string{"MAIPÚ", "ÑUÑOA", "SANTIAGO"}, names)

	v, err := tbl.Value(2, "COD_COMUNA")
	require.NoError(t, err)
	assert.Equal(t, "13101", v)
}

func TestTable_CoordsIsACopy(t *testing.T) {
	src := sampleSource()
	tbl, err := Tabulate(src)
	require.NoError(t, err)

	coords := tbl.Coords(0)
	coords[0] = Point{X: 99, Y: 99}

	assert.Equal(t, Point{X: 0, Y: 0}, tbl.Coords(0)[0])
	assert.Equal(t, Point{X: 0, Y: 0}, src.Shapes()[0].Points[0])
}

func TestTabulate_GeometryShorterThanRecords(t *testing.T) {
	src := sampleSource()
	src.shapes = src.shapes[:2]

	_, err := Tabulate(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestTabulate_RecordWidthMismatch(t *testing.T) {
	src := sampleSource()
	src.records[1] = []string{"ÑUÑOA"}

	_, err := Tabulate(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Contains(t, err.Error(), "record 1")
}

func TestTabulate_Empty(t *testing.T) {
	tbl, err := Tabulate(New(nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{CoordsColumn}, tbl.Columns())
}

func TestTable_Index(t *testing.T) {
	tbl, err := Tabulate(sampleSource())
	require.NoError(t, err)

	idx, err := tbl.Index("NOM_COMUNA", "ÑUÑOA")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = tbl.Index("NOM_COMUNA", "PROVIDENCIA")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	_, err = tbl.Index("MISSING", "x")
	assert.Error(t, err)
}

func TestTable_ValueErrors(t *testing.T) {
	tbl, err := Tabulate(sampleSource())
	require.NoError(t, err)

	_, err = tbl.Value(0, "MISSING")
	assert.Error(t, err)

	_, err = tbl.Value(10, "NOM_COMUNA")
	assert.Error(t, err)
}
