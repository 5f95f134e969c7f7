package tilepath

import (
	"math"

	"github.com/pdrpinto/tilepath/internal/grid"
)

// node is the per-tile search record. Nodes live for as long as their Finder
// and are reused across searches; every field except the coordinate belongs
// to the search identified by generation.
type node struct {
	x, y int

	generation uint64
	cost       float64
	heuristic  float64
	parent     *node
	depth      int

	// position in the open heap, -1 when not open
	indexInQueue int
	// insertion order in the open heap, breaks ties between equal keys
	sequence uint64
	closed   bool
}

func (n *node) priority() float64 { return n.cost + n.heuristic }

// setParent links n under parent and returns the depth n now sits at.
func (n *node) setParent(parent *node) int {
	n.depth = parent.depth + 1
	n.parent = parent
	return n.depth
}

// nodePool is an arena with one node per tile, indexed row-major.
type nodePool struct {
	width, height int
	nodes         []node
	generation    uint64
	closedCount   int
}

func newNodePool(width, height int) *nodePool {
	pool := &nodePool{
		width:  width,
		height: height,
		nodes:  make([]node, width*height),
	}
	for i := range pool.nodes {
		x, y := grid.Coord(i, width)
		pool.nodes[i] = node{x: x, y: y, indexInQueue: -1}
	}
	return pool
}

// reset starts a new search. Nodes from earlier searches are not touched
// here; they are cleared the first time at() hands them out.
func (p *nodePool) reset() {
	p.generation++
	p.closedCount = 0
}

// at returns the node for (x, y), clearing any state left by a previous search.
func (p *nodePool) at(x, y int) *node {
	n := &p.nodes[grid.Index(x, y, p.width)]
	if n.generation != p.generation {
		n.generation = p.generation
		n.cost = math.Inf(1)
		n.heuristic = 0
		n.parent = nil
		n.depth = 0
		n.indexInQueue = -1
		n.sequence = 0
		n.closed = false
	}
	return n
}

// current reports whether n has been touched by the running search.
func (p *nodePool) current(n *node) bool { return n.generation == p.generation }

func (p *nodePool) close(n *node) {
	if !n.closed {
		n.closed = true
		p.closedCount++
	}
}

func (p *nodePool) reopen(n *node) {
	if n.closed {
		n.closed = false
		p.closedCount--
	}
}

func (p *nodePool) isClosed(n *node) bool { return p.current(n) && n.closed }

// closedSteps lists the closed tiles of the running search in pool order.
func (p *nodePool) closedSteps() []Step {
	steps := make([]Step, 0, p.closedCount)
	for i := range p.nodes {
		n := &p.nodes[i]
		if p.isClosed(n) {
			steps = append(steps, Step{X: n.x, Y: n.y})
		}
	}
	return steps
}
