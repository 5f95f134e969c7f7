package tilepath

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/tilepath/internal/grid"
)

// Step is a single tile on a Path.
type Step struct {
	X int
	Y int
}

func (s Step) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// Path is an ordered sequence of tiles from the start of a search to its
// target, both included. A Path is immutable once built.
type Path struct {
	steps []Step
}

// NewPath builds a path from the given steps. The slice is copied.
func NewPath(steps ...Step) *Path {
	return &Path{steps: append([]Step(nil), steps...)}
}

// Len returns the number of steps, start and target included.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Step returns the step at index, 0 <= index < Len().
func (p *Path) Step(index int) Step { return p.steps[index] }

// X returns the x coordinate of the step at index.
func (p *Path) X(index int) int { return p.steps[index].X }

// Y returns the y coordinate of the step at index.
func (p *Path) Y(index int) int { return p.steps[index].Y }

func (p *Path) First() Step { return p.steps[0] }
func (p *Path) Last() Step  { return p.steps[len(p.steps)-1] }

// Steps returns a copy of the steps.
func (p *Path) Steps() []Step {
	if p == nil {
		return nil
	}
	return append([]Step(nil), p.steps...)
}

// Contains reports whether the path goes through (x, y).
func (p *Path) Contains(x, y int) bool {
	if p == nil {
		return false
	}
	for _, s := range p.steps {
		if s.X == x && s.Y == y {
			return true
		}
	}
	return false
}

// Contiguous reports whether every consecutive pair of steps is one move
// apart under 4-way (or, with diagonal, 8-way) movement.
func (p *Path) Contiguous(diagonal bool) bool {
	for i := 1; i < p.Len(); i++ {
		a, b := p.steps[i-1], p.steps[i]
		if !grid.Adjacent(a.X, a.Y, b.X, b.Y, diagonal) {
			return false
		}
	}
	return true
}

// Cost sums the movement cost the map reports for each move along the path.
func (p *Path) Cost(m TileMap, mover Mover) float64 {
	total := 0.0
	for i := 1; i < p.Len(); i++ {
		a, b := p.steps[i-1], p.steps[i]
		total += m.Cost(mover, a.X, a.Y, b.X, b.Y)
	}
	return total
}

func (p *Path) String() string {
	parts := make([]string, 0, p.Len())
	for _, s := range p.Steps() {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " -> ")
}
