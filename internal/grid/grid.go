package grid

// Offset is a relative move from one tile to an adjacent one.
type Offset struct {
	DX int
	DY int
}

// Offsets are listed column by column (dx outer, dy inner) so that the
// neighbour scan order, and with it tie-breaking, is fixed.
var (
	eightWay = []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	fourWay = []Offset{
		{-1, 0},
		{0, -1}, {0, 1},
		{1, 0},
	}
)

// Neighbours returns the adjacency offsets for 8-way movement when diagonal
// is true, otherwise the 4 orthogonal offsets. The slice must not be modified.
func Neighbours(diagonal bool) []Offset {
	if diagonal {
		return eightWay
	}
	return fourWay
}

// InBounds reports whether (x, y) lies on a width x height grid.
func InBounds(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}

// Index flattens (x, y) into a row-major index.
func Index(x, y, width int) int {
	return y*width + x
}

// Coord is the inverse of Index.
func Coord(index, width int) (int, int) {
	return index % width, index / width
}

// Adjacent reports whether two distinct tiles are one move apart.
func Adjacent(ax, ay, bx, by int, diagonal bool) bool {
	dx := abs(ax - bx)
	dy := abs(ay - by)
	if dx > 1 || dy > 1 || dx+dy == 0 {
		return false
	}
	return diagonal || dx+dy == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
