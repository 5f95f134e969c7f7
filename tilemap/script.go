package tilemap

import (
	"fmt"
	"math"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// A cost script sees the move through these globals and prices it by
// assigning to cost, which starts at 1 for every move:
//
//	math := import("math")
//	if to_terrain == "trees" { cost = 3 }
//	if dx != 0 && dy != 0 { cost = cost * math.sqrt2 }
//
// Available globals: unit, from_terrain, to_terrain (strings) and dx, dy
// (ints, the move direction). The math and text stdlib modules can be
// imported.
const (
	varUnit        = "unit"
	varFromTerrain = "from_terrain"
	varToTerrain   = "to_terrain"
	varDX          = "dx"
	varDY          = "dy"
	varCost        = "cost"
)

type moveVars struct {
	unit        string
	fromTerrain string
	toTerrain   string
	dx, dy      int
}

// costScript runs a compiled tengo script. Compiled scripts hold their
// globals, so runs are serialized.
type costScript struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
}

func compileCostScript(src string) (*costScript, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add(varUnit, "")
	_ = script.Add(varFromTerrain, "")
	_ = script.Add(varToTerrain, "")
	_ = script.Add(varDX, 0)
	_ = script.Add(varDY, 0)
	_ = script.Add(varCost, 1.0)
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile cost script: %w", err)
	}
	return &costScript{compiled: compiled}, nil
}

func (c *costScript) eval(move moveVars) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, value := range map[string]any{
		varUnit:        move.unit,
		varFromTerrain: move.fromTerrain,
		varToTerrain:   move.toTerrain,
		varDX:          move.dx,
		varDY:          move.dy,
		varCost:        1.0,
	} {
		if err := c.compiled.Set(name, value); err != nil {
			return 0, err
		}
	}
	if err := c.compiled.Run(); err != nil {
		return 0, fmt.Errorf("run cost script: %w", err)
	}

	result := c.compiled.Get(varCost)
	switch result.ValueType() {
	case "int", "float":
	default:
		return 0, fmt.Errorf("cost script set cost to a %s", result.ValueType())
	}
	cost := result.Float()
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, fmt.Errorf("cost script returned invalid cost %v", cost)
	}
	return cost, nil
}
