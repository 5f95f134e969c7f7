package tilemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `
rows:
  - "..~~~..."
  - ".TT~~..."
  - "........"
regions:
  - {terrain: trees, x: 6, y: 0, w: 5, h: 2}
units:
  - {unit: tank, x: 0, y: 2}
  - {unit: boat, x: 3, y: 0}
cost_script: |
  if to_terrain == "trees" { cost = 2 }
`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(sampleMap))
	require.NoError(t, err)

	assert.Equal(t, 8, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, Grass, m.Terrain(0, 0))
	assert.Equal(t, Water, m.Terrain(2, 0))
	assert.Equal(t, Trees, m.Terrain(1, 1))
	assert.Equal(t, Trees, m.Terrain(7, 1))
	assert.Equal(t, Grass, m.Terrain(7, 2))
	assert.Equal(t, Tank, m.Unit(0, 2))
	assert.Equal(t, Boat, m.Unit(3, 0))
	assert.Equal(t, 2.0, m.Cost(Plane, 0, 0, 1, 1))
}

func TestLoad_SizeWithoutRows(t *testing.T) {
	m, err := Load(strings.NewReader("width: 4\nheight: 2\nregions:\n  - {terrain: water, x: 0, y: 0, w: 1, h: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, Water, m.Terrain(0, 1))
	assert.Equal(t, Grass, m.Terrain(1, 1))
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"unknown field":  "width: 2\nheight: 2\ncolour: red\n",
		"no size":        "units: []\n",
		"row count":      "height: 3\nrows: [\"..\", \"..\"]\n",
		"row length":     "rows: [\"...\", \"..\"]\n",
		"row tile":       "rows: [\".X\"]\n",
		"terrain":        "width: 2\nheight: 2\nregions:\n  - {terrain: lava, x: 0, y: 0, w: 1, h: 1}\n",
		"unit name":      "width: 2\nheight: 2\nunits:\n  - {unit: submarine, x: 0, y: 0}\n",
		"unit placement": "width: 2\nheight: 2\nunits:\n  - {unit: tank, x: 2, y: 0}\n",
		"script":         "width: 2\nheight: 2\ncost_script: \"cost = (\"\n",
		"malformed":      "width: [\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "tilemap:"), err.Error())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o644))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Width())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
