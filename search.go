package tilepath

import (
	"fmt"

	"github.com/pdrpinto/tilepath/internal/grid"
)

// search holds the state of one run over a Finder's pool. It is driven either
// to completion by FindPathContext or one expansion at a time by a Stepper.
type search struct {
	finder *Finder
	mover  Mover

	sx, sy int
	tx, ty int
	start  *node
	target *node

	current     *node
	maxDepth    int
	expanded    int
	iterations  int
	done        bool
	trivial     bool
	ceilingHit  bool
	invalidated bool
}

// begin validates the request and resets the pool for a new search.
func (f *Finder) begin(mover Mover, sx, sy, tx, ty int) (*search, error) {
	if err := f.checkBounds(sx, sy); err != nil {
		return nil, err
	}
	if err := f.checkBounds(tx, ty); err != nil {
		return nil, err
	}
	if f.tileMap.Blocked(mover, tx, ty) {
		return nil, fmt.Errorf("%w at (%d,%d)", ErrTargetBlocked, tx, ty)
	}

	if f.active != nil {
		f.active.invalidated = true
	}
	f.pool.reset()
	f.open.clear()

	s := &search{
		finder: f,
		mover:  mover,
		sx:     sx, sy: sy,
		tx: tx, ty: ty,
	}
	f.active = s

	s.start = f.pool.at(sx, sy)
	s.start.cost = 0
	s.start.depth = 0
	s.target = f.pool.at(tx, ty)

	if s.start == s.target {
		s.trivial = true
		s.done = true
		return s, nil
	}

	s.start.heuristic = f.options.Heuristic(f.tileMap, mover, sx, sy, tx, ty)
	f.open.insert(s.start)
	return s, nil
}

// release hands the pool back to the finder.
func (s *search) release() {
	if s.finder.active == s {
		s.finder.active = nil
	}
}

// step performs one expansion, or marks the search done when the frontier is
// empty, the depth ceiling is reached, or the target comes off the frontier.
func (s *search) step() {
	f := s.finder
	if s.maxDepth >= f.options.MaxSearchDistance {
		s.ceilingHit = true
		s.done = true
		return
	}
	if f.open.size() == 0 {
		s.done = true
		return
	}
	s.iterations++

	current := f.open.popMin()
	s.current = current
	if current == s.target {
		s.done = true
		return
	}
	f.pool.close(current)
	s.expanded++

	for _, offset := range grid.Neighbours(f.options.AllowDiagonal) {
		x := current.x + offset.DX
		y := current.y + offset.DY
		if !s.validLocation(x, y) {
			continue
		}

		nextStepCost := current.cost + f.tileMap.Cost(s.mover, current.x, current.y, x, y)
		neighbour := f.pool.at(x, y)
		f.tileMap.Visited(x, y)

		// A cheaper route was found to a node already seen: pull it back
		// out of open or closed so it gets re-evaluated below.
		if nextStepCost < neighbour.cost {
			f.open.remove(neighbour)
			f.pool.reopen(neighbour)
		}

		if !f.open.contains(neighbour) && !neighbour.closed {
			neighbour.cost = nextStepCost
			neighbour.heuristic = f.options.Heuristic(f.tileMap, s.mover, x, y, s.tx, s.ty)
			s.maxDepth = max(s.maxDepth, neighbour.setParent(current))
			f.open.insert(neighbour)
		}
	}
}

// validLocation reports whether (x, y) is on the map and enterable. The start
// tile is always enterable since the mover is standing on it.
func (s *search) validLocation(x, y int) bool {
	if !grid.InBounds(x, y, s.finder.pool.width, s.finder.pool.height) {
		return false
	}
	if x == s.sx && y == s.sy {
		return true
	}
	return !s.finder.tileMap.Blocked(s.mover, x, y)
}

// finish builds the result of a completed search.
func (s *search) finish() (Result, error) {
	result := s.stats()
	if s.trivial {
		result.Path = NewPath(Step{X: s.sx, Y: s.sy})
		result.Found = true
		return result, nil
	}

	// The target counts as reached once it has a parent, even if the
	// ceiling stopped the loop before it was popped.
	if s.target.parent == nil {
		if s.ceilingHit {
			return result, ErrSearchDepthExceeded
		}
		return result, ErrNoPath
	}
	path := s.reconstructPath()
	if path == nil {
		return result, fmt.Errorf("%w: broken parent chain", ErrNoPath)
	}
	result.Path = path
	result.TotalCost = s.target.cost
	result.Found = true
	return result, nil
}

func (s *search) stats() Result {
	return Result{ExpandedNodes: s.expanded, MaxDepth: s.maxDepth}
}

// reconstructPath walks parent links from the target back to the start.
// It returns nil if the chain does not lead to the start, which can only
// happen when the map reports negative costs.
func (s *search) reconstructPath() *Path {
	limit := len(s.finder.pool.nodes)
	steps := make([]Step, 0, s.target.depth+1)
	for current := s.target; current != s.start; current = current.parent {
		if current == nil || len(steps) > limit {
			return nil
		}
		steps = append(steps, Step{X: current.x, Y: current.y})
	}
	steps = append(steps, Step{X: s.sx, Y: s.sy})

	// reverse path
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Path{steps: steps}
}
