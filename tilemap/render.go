package tilemap

import (
	"bufio"
	"io"

	"github.com/pdrpinto/tilepath"
)

var (
	terrainGlyphs = map[Terrain]byte{Grass: '.', Water: '~', Trees: 'T'}
	unitGlyphs    = map[tilepath.Mover]byte{Plane: 'P', Boat: 'B', Tank: 'K'}
)

const (
	pathGlyph    = '*'
	visitedGlyph = '+'
)

// Render writes the map as text, one line per row. Units are drawn as P, B
// and K, tiles on path as '*' and tiles visited by a search as '+'. The
// path may be nil.
func (m *Map) Render(w io.Writer, path *tilepath.Path) error {
	onPath := make(map[tilepath.Step]bool, path.Len())
	for _, s := range path.Steps() {
		onPath[s] = true
	}

	out := bufio.NewWriter(w)
	line := make([]byte, m.width+1)
	line[m.width] = '\n'
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			line[x] = m.glyph(x, y, onPath[tilepath.Step{X: x, Y: y}])
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	return out.Flush()
}

func (m *Map) glyph(x, y int, onPath bool) byte {
	if unit := m.Unit(x, y); unit != NoUnit {
		if g, ok := unitGlyphs[unit]; ok {
			return g
		}
		return '?'
	}
	if onPath {
		return pathGlyph
	}
	if m.WasVisited(x, y) {
		return visitedGlyph
	}
	return terrainGlyphs[m.Terrain(x, y)]
}
