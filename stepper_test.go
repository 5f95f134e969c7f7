package tilepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStepper(t *testing.T, stepper *Stepper) StepSnapshot {
	t.Helper()
	for i := 0; i < 10000; i++ {
		snapshot, err := stepper.Step()
		if snapshot.Done {
			if snapshot.Found {
				require.NoError(t, err)
			}
			return snapshot
		}
		require.NoError(t, err)
	}
	t.Fatal("stepper did not finish")
	return StepSnapshot{}
}

func TestStepper_MatchesFindPath(t *testing.T) {
	m := parseMap(
		"......",
		".####.",
		"...#..",
		".#.#.#",
		"......",
	)
	finder, err := NewFinder(m)
	require.NoError(t, err)

	want, err := finder.FindPath(walker, 0, 0, 5, 4)
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 0, 0, 5, 4)
	require.NoError(t, err)
	final := runStepper(t, stepper)

	assert.True(t, final.Found)
	assert.Equal(t, want.Path.Steps(), final.Path.Steps())
	assert.Equal(t, Step{5, 4}, final.Current)

	got, err := stepper.Result()
	require.NoError(t, err)
	assert.Equal(t, want.TotalCost, got.TotalCost)
	assert.Equal(t, want.ExpandedNodes, got.ExpandedNodes)
	assert.Equal(t, want.ExpandedNodes+1, final.StepIndex)
}

func TestStepper_FirstSnapshot(t *testing.T) {
	finder, err := NewFinder(openMap(3, 3))
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 1, 1, 2, 2)
	require.NoError(t, err)
	_, err = stepper.Result()
	require.Error(t, err)

	snapshot, err := stepper.Step()
	require.NoError(t, err)
	assert.False(t, snapshot.Done)
	assert.Equal(t, 1, snapshot.StepIndex)
	assert.Equal(t, Step{1, 1}, snapshot.Current)
	assert.Equal(t, []Step{{1, 1}}, snapshot.Closed)
	assert.ElementsMatch(t, []Step{{0, 1}, {1, 0}, {1, 2}, {2, 1}}, snapshot.Open)
	assert.Equal(t, 1, snapshot.MaxDepth)
}

func TestStepper_NotFound(t *testing.T) {
	m := parseMap(
		".#.",
		".#.",
	)
	finder, err := NewFinder(m)
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 0, 0, 2, 1)
	require.NoError(t, err)
	final := runStepper(t, stepper)
	assert.False(t, final.Found)
	assert.Nil(t, final.Path)

	_, err = stepper.Result()
	assert.ErrorIs(t, err, ErrNoPath)

	// Stepping a finished search keeps reporting the outcome.
	again, err := stepper.Step()
	assert.True(t, again.Done)
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = finder.Stepper(walker, 0, 0, 1, 0)
	assert.ErrorIs(t, err, ErrTargetBlocked)
}

func TestStepper_InvalidatedByAnotherSearch(t *testing.T) {
	finder, err := NewFinder(openMap(4, 4))
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 0, 0, 3, 3)
	require.NoError(t, err)
	_, err = stepper.Step()
	require.NoError(t, err)

	_, err = finder.FindPath(walker, 3, 3, 0, 0)
	require.NoError(t, err)

	snapshot, err := stepper.Step()
	assert.ErrorIs(t, err, ErrStepperInvalidated)
	assert.True(t, snapshot.Done)
	assert.Nil(t, snapshot.Open)
}

func TestStepper_CloseReleasesFinder(t *testing.T) {
	finder, err := NewFinder(openMap(4, 4))
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 0, 0, 3, 3)
	require.NoError(t, err)
	stepper.Close()

	_, err = stepper.Step()
	assert.ErrorIs(t, err, ErrStepperInvalidated)

	result, err := finder.FindPath(walker, 0, 0, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Path.Len())
}

func TestStepper_StartEqualsTarget(t *testing.T) {
	finder, err := NewFinder(openMap(2, 2))
	require.NoError(t, err)

	stepper, err := finder.Stepper(walker, 1, 0, 1, 0)
	require.NoError(t, err)
	snapshot, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, snapshot.Done)
	assert.True(t, snapshot.Found)
	assert.Equal(t, []Step{{1, 0}}, snapshot.Path.Steps())
}
