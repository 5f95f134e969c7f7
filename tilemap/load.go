package tilemap

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSpec is the YAML layout of a map file:
//
//	width: 8
//	height: 3
//	rows:            # optional, one character per tile
//	  - "..~~~..."
//	  - ".TT~~..."
//	  - "........"
//	regions:         # applied after rows
//	  - {terrain: trees, x: 5, y: 0, w: 2, h: 2}
//	units:
//	  - {unit: tank, x: 0, y: 2}
//	cost_script: |
//	  if to_terrain == "trees" { cost = 2 }
//
// Row characters are '.' grass, '~' water and 'T' trees. When rows are
// given, width and height may be omitted.
type fileSpec struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Rows       []string     `yaml:"rows"`
	Regions    []regionSpec `yaml:"regions"`
	Units      []unitSpec   `yaml:"units"`
	CostScript string       `yaml:"cost_script"`
}

type regionSpec struct {
	Terrain string `yaml:"terrain"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	W       int    `yaml:"w"`
	H       int    `yaml:"h"`
}

type unitSpec struct {
	Unit string `yaml:"unit"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

var rowTerrain = map[rune]Terrain{
	'.': Grass,
	'~': Water,
	'T': Trees,
}

// LoadFile reads a YAML map file.
func LoadFile(path string, options ...Option) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tilemap: %w", err)
	}
	defer f.Close()

	m, err := Load(f, options...)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Load parses a YAML map.
func Load(r io.Reader, options ...Option) (*Map, error) {
	var spec fileSpec
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("tilemap: empty map file")
		}
		return nil, fmt.Errorf("tilemap: decode: %w", err)
	}
	m, err := spec.build(options)
	if err != nil {
		return nil, fmt.Errorf("tilemap: %w", err)
	}
	return m, nil
}

func (spec *fileSpec) build(options []Option) (*Map, error) {
	if len(spec.Rows) > 0 {
		if spec.Height == 0 {
			spec.Height = len(spec.Rows)
		}
		if spec.Width == 0 {
			spec.Width = len([]rune(spec.Rows[0]))
		}
		if len(spec.Rows) != spec.Height {
			return nil, fmt.Errorf("%d rows for height %d", len(spec.Rows), spec.Height)
		}
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", spec.Width, spec.Height)
	}

	m := New(spec.Width, spec.Height, options...)
	for y, row := range spec.Rows {
		runes := []rune(row)
		if len(runes) != spec.Width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(runes), spec.Width)
		}
		for x, c := range runes {
			t, ok := rowTerrain[c]
			if !ok {
				return nil, fmt.Errorf("row %d: unknown tile %q", y, c)
			}
			m.SetTerrain(x, y, t)
		}
	}

	for i, region := range spec.Regions {
		t, err := ParseTerrain(region.Terrain)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		m.Fill(region.X, region.Y, region.W, region.H, t)
	}

	for i, placement := range spec.Units {
		unit, err := ParseUnit(placement.Unit)
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		if !m.InBounds(placement.X, placement.Y) {
			return nil, fmt.Errorf("unit %d: (%d,%d) is off the map", i, placement.X, placement.Y)
		}
		m.SetUnit(placement.X, placement.Y, unit)
	}

	if err := m.SetCostScript(spec.CostScript); err != nil {
		return nil, err
	}
	return m, nil
}
