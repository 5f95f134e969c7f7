package tilepath

import "math"

// Heuristic estimates the remaining cost from (x, y) to (tx, ty) for mover.
// It must return a finite, non-negative value for every tile on the map.
// Paths are only guaranteed cost-optimal when the estimate never exceeds the
// real remaining cost.
type Heuristic func(m TileMap, mover Mover, x, y, tx, ty int) float64

// Euclidean is the straight-line distance. It is the default heuristic.
func Euclidean(_ TileMap, _ Mover, x, y, tx, ty int) float64 {
	dx := float64(tx - x)
	dy := float64(ty - y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Manhattan suits 4-way movement with unit costs.
func Manhattan(_ TileMap, _ Mover, x, y, tx, ty int) float64 {
	dx, dy := delta(x, y, tx, ty)
	return dx + dy
}

// Chebyshev suits 8-way movement where a diagonal costs the same as a straight move.
func Chebyshev(_ TileMap, _ Mover, x, y, tx, ty int) float64 {
	dx, dy := delta(x, y, tx, ty)
	return math.Max(dx, dy)
}

// Octile suits 8-way movement where a diagonal costs sqrt(2).
func Octile(_ TileMap, _ Mover, x, y, tx, ty int) float64 {
	dx, dy := delta(x, y, tx, ty)
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// Zero turns the search into Dijkstra's algorithm.
func Zero(TileMap, Mover, int, int, int, int) float64 { return 0 }

func delta(x, y, tx, ty int) (float64, float64) {
	return math.Abs(float64(tx - x)), math.Abs(float64(ty - y))
}
