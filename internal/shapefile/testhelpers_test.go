package shapefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
)

// square returns a closed unit square ring offset by (x, y).
func square(x, y float64) []shp.Point {
	return []shp.Point{
		{X: x, Y: y},
		{X: x, Y: y + 1},
		{X: x + 1, Y: y + 1},
		{X: x + 1, Y: y},
		{X: x, Y: y},
	}
}

type fixtureFeature struct {
	attrs []string
	rings [][]shp.Point
}

// writeFixture writes a polygon shapefile with string fields to a temp dir
// and returns the .shp path.
func writeFixture(t *testing.T, fields []string, features []fixtureFeature) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	shpFields := make([]shp.Field, len(fields))
	for i, name := range fields {
		shpFields[i] = shp.StringField(name, 40)
	}
	require.NoError(t, w.SetFields(shpFields))

	for _, f := range features {
		poly := shp.Polygon(*shp.NewPolyLine(f.rings))
		n := w.Write(&poly)
		for i, v := range f.attrs {
			require.NoError(t, w.WriteAttribute(int(n), i, v))
		}
	}
	w.Close()

	// go-shp v0.1.1 names the attribute file "<base>dbf" without the dot.
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))

	return path
}
