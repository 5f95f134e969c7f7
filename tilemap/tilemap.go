// Package tilemap is a tilepath.TileMap made of terrain tiles and units.
//
// Each unit type moves by its own rules: planes fly over anything, boats stay
// on water and tanks stay on grass. No unit may enter a tile another unit
// occupies. Maps can be built in code, loaded from YAML and given a tengo
// script that prices each move.
package tilemap

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pdrpinto/tilepath"
)

// Terrain is the ground type of a tile.
type Terrain uint8

const (
	Grass Terrain = iota
	Water
	Trees
)

var terrainNames = map[Terrain]string{
	Grass: "grass",
	Water: "water",
	Trees: "trees",
}

func (t Terrain) String() string {
	if name, ok := terrainNames[t]; ok {
		return name
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// ParseTerrain maps a terrain name back to its value.
func ParseTerrain(name string) (Terrain, error) {
	for t, n := range terrainNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

// Unit types. They double as the tilepath.Mover passed to searches.
const (
	NoUnit tilepath.Mover = iota
	Plane
	Boat
	Tank
)

var unitNames = map[tilepath.Mover]string{
	Plane: "plane",
	Boat:  "boat",
	Tank:  "tank",
}

// UnitName returns the name of a unit type.
func UnitName(unit tilepath.Mover) string {
	if name, ok := unitNames[unit]; ok {
		return name
	}
	return fmt.Sprintf("unit(%d)", int(unit))
}

// ParseUnit maps a unit name back to its value.
func ParseUnit(name string) (tilepath.Mover, error) {
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return NoUnit, fmt.Errorf("unknown unit %q", name)
}

// Map is a rectangular terrain map with units placed on it.
//
// Blocked, Cost and Visited are safe for concurrent use. Terrain and units
// must not be changed while a search is running.
type Map struct {
	width   int
	height  int
	terrain []Terrain
	units   []tilepath.Mover
	script  *costScript
	logger  *slog.Logger

	mu      sync.Mutex
	visited []bool
}

// Option configures a Map.
type Option func(*Map)

// WithLogger sets the logger used to report cost script failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Map) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a width x height map covered in grass.
func New(width, height int, options ...Option) *Map {
	m := &Map{
		width:   width,
		height:  height,
		terrain: make([]Terrain, width*height),
		units:   make([]tilepath.Mover, width*height),
		visited: make([]bool, width*height),
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Default sizes of the demo map.
const (
	DefaultWidth  = 30
	DefaultHeight = 30
)

// Default builds the demo map: a coast of water along the west and south
// edges, two woods, and one unit of each type.
func Default(options ...Option) *Map {
	m := New(DefaultWidth, DefaultHeight, options...)
	m.Fill(0, 0, 5, 5, Water)
	m.Fill(0, 5, 3, 10, Water)
	m.Fill(0, 15, 7, 15, Water)
	m.Fill(7, 26, 22, 4, Water)

	m.Fill(17, 5, 10, 3, Trees)
	m.Fill(20, 8, 5, 3, Trees)

	m.Fill(8, 2, 7, 3, Trees)
	m.Fill(10, 5, 3, 3, Trees)

	m.SetUnit(15, 15, Tank)
	m.SetUnit(2, 7, Boat)
	m.SetUnit(20, 25, Plane)
	return m
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) is on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Map) index(x, y int) int { return y*m.width + x }

// Terrain returns the terrain at (x, y).
func (m *Map) Terrain(x, y int) Terrain { return m.terrain[m.index(x, y)] }

// SetTerrain changes the terrain at (x, y).
func (m *Map) SetTerrain(x, y int, t Terrain) { m.terrain[m.index(x, y)] = t }

// Fill covers a w x h area starting at (x, y) with t, clipped to the map.
func (m *Map) Fill(x, y, w, h int, t Terrain) {
	for xp := max(x, 0); xp < min(x+w, m.width); xp++ {
		for yp := max(y, 0); yp < min(y+h, m.height); yp++ {
			m.SetTerrain(xp, yp, t)
		}
	}
}

// Unit returns the unit at (x, y), or NoUnit.
func (m *Map) Unit(x, y int) tilepath.Mover { return m.units[m.index(x, y)] }

// SetUnit places a unit at (x, y). NoUnit clears the tile.
func (m *Map) SetUnit(x, y int, unit tilepath.Mover) { m.units[m.index(x, y)] = unit }

// MoveUnit moves whatever stands on (sx, sy) to (tx, ty).
func (m *Map) MoveUnit(sx, sy, tx, ty int) {
	unit := m.Unit(sx, sy)
	m.SetUnit(sx, sy, NoUnit)
	m.SetUnit(tx, ty, unit)
}

// Blocked implements tilepath.TileMap.
func (m *Map) Blocked(mover tilepath.Mover, x, y int) bool {
	if m.Unit(x, y) != NoUnit {
		return true
	}
	switch mover {
	case Plane:
		return false
	case Tank:
		return m.Terrain(x, y) != Grass
	case Boat:
		return m.Terrain(x, y) != Water
	default:
		return true
	}
}

// Cost implements tilepath.TileMap. Every move costs 1 unless a cost script
// is attached.
func (m *Map) Cost(mover tilepath.Mover, sx, sy, tx, ty int) float64 {
	if m.script == nil {
		return 1
	}
	cost, err := m.script.eval(moveVars{
		unit:        UnitName(mover),
		fromTerrain: m.Terrain(sx, sy).String(),
		toTerrain:   m.Terrain(tx, ty).String(),
		dx:          tx - sx,
		dy:          ty - sy,
	})
	if err != nil {
		m.logger.Warn("cost script failed, using default cost",
			slog.String("unit", UnitName(mover)),
			slog.Int("x", tx), slog.Int("y", ty),
			slog.Any("error", err))
		return 1
	}
	return cost
}

// Visited implements tilepath.TileMap by recording the tile.
func (m *Map) Visited(x, y int) {
	m.mu.Lock()
	m.visited[m.index(x, y)] = true
	m.mu.Unlock()
}

// WasVisited reports whether a search evaluated (x, y) since the last ClearVisited.
func (m *Map) WasVisited(x, y int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visited[m.index(x, y)]
}

// VisitedCount returns the number of visited tiles.
func (m *Map) VisitedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, v := range m.visited {
		if v {
			count++
		}
	}
	return count
}

// ClearVisited forgets all visited tiles.
func (m *Map) ClearVisited() {
	m.mu.Lock()
	clear(m.visited)
	m.mu.Unlock()
}

// SetCostScript compiles src and uses it to price every move from now on.
// An empty src restores the default cost of 1.
func (m *Map) SetCostScript(src string) error {
	if src == "" {
		m.script = nil
		return nil
	}
	script, err := compileCostScript(src)
	if err != nil {
		return err
	}
	m.script = script
	return nil
}
