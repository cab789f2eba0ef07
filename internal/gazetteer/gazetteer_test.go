package gazetteer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAreas creates a point shapefile with AREA/NAME attributes.
func writeAreas(t *testing.T, rows [][2]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "areas.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("AREA", 4),
		shp.StringField("NAME", 40),
	}))
	for i, r := range rows {
		n := w.Write(&shp.Point{X: float64(i), Y: float64(i)})
		require.NoError(t, w.WriteAttribute(int(n), 0, r[0]))
		require.NoError(t, w.WriteAttribute(int(n), 1, r[1]))
	}
	w.Close()

	// go-shp v0.1.1 writes the attribute table as "areasdbf".
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

func TestLoad(t *testing.T) {
	path := writeAreas(t, [][2]string{
		{"WS", "Walsall"},
		{"fy", "Blackpool"},
		{"B", "Birmingham"},
		{"WS", "Duplicate"},
		{"", "Nowhere"},
	})

	g, err := Load(path, "area", "name")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, "Walsall", g.Name("WS"))
	assert.Equal(t, "Blackpool", g.Name("FY"))
	assert.Equal(t, "Birmingham", g.Name("b"))
	assert.Equal(t, "", g.Name("ZE"))
}

func TestLoadMissingFields(t *testing.T) {
	path := writeAreas(t, [][2]string{{"WS", "Walsall"}})

	_, err := Load(path, "PC_AREA", "NAME")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PC_AREA")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.shp"), "AREA", "NAME")
	assert.Error(t, err)
}

func TestLoadMissingAttributeTable(t *testing.T) {
	path := writeAreas(t, [][2]string{{"WS", "Walsall"}})
	require.NoError(t, os.Remove(strings.TrimSuffix(path, ".shp")+".dbf"))

	_, err := Load(path, "AREA", "NAME")
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "areas.dbf")
}

func TestNilGazetteer(t *testing.T) {
	var g *Gazetteer
	assert.Equal(t, "", g.Name("WS"))
	assert.Zero(t, g.Len())
}
