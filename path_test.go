package tilepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	steps := []Step{{0, 0}, {1, 0}, {1, 1}}
	path := NewPath(steps...)
	steps[0] = Step{9, 9}

	assert.Equal(t, 3, path.Len())
	assert.Equal(t, Step{0, 0}, path.First())
	assert.Equal(t, Step{1, 1}, path.Last())
	assert.Equal(t, 1, path.X(1))
	assert.Equal(t, 0, path.Y(1))
	assert.True(t, path.Contains(1, 0))
	assert.False(t, path.Contains(9, 9))
	assert.Equal(t, "(0,0) -> (1,0) -> (1,1)", path.String())

	copied := path.Steps()
	copied[0] = Step{5, 5}
	assert.Equal(t, Step{0, 0}, path.Step(0))
}

func TestPath_Contiguous(t *testing.T) {
	assert.True(t, NewPath(Step{0, 0}, Step{1, 0}, Step{1, 1}).Contiguous(false))
	assert.False(t, NewPath(Step{0, 0}, Step{1, 1}).Contiguous(false))
	assert.True(t, NewPath(Step{0, 0}, Step{1, 1}).Contiguous(true))
	assert.False(t, NewPath(Step{0, 0}, Step{2, 0}).Contiguous(true))
	assert.False(t, NewPath(Step{0, 0}, Step{0, 0}).Contiguous(true))
	assert.True(t, NewPath(Step{3, 3}).Contiguous(false))
}

func TestPath_Cost(t *testing.T) {
	m := parseMap(
		"159",
		"111",
	)
	path := NewPath(Step{0, 0}, Step{1, 0}, Step{2, 0}, Step{2, 1})
	assert.Equal(t, 15.0, path.Cost(m, walker))
	assert.Zero(t, NewPath(Step{0, 0}).Cost(m, walker))
}

func TestPath_Nil(t *testing.T) {
	var path *Path
	assert.Zero(t, path.Len())
	assert.Nil(t, path.Steps())
	assert.False(t, path.Contains(0, 0))
	assert.Empty(t, path.String())
}
