package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestEndTypeOnlyOnLast(t *testing.T) {
	step := New(Mid, 1.0, 0.99, mat.NewVecDense(1, nil), 3)
	step.SetEnd(Timeout)
	assert.Equal(t, Unset, step.EndType())
	assert.False(t, step.TimedOut())

	step.StepType = Last
	assert.Equal(t, Timeout, step.EndType())
	assert.True(t, step.TimedOut())

	step.SetEnd(TerminalStateReached)
	assert.False(t, step.TimedOut())
}

func TestNewTransitionCopiesStates(t *testing.T) {
	state := []float64{1, 2}
	next := []float64{3, 4}
	tr := NewTransition(state, 1, 0.5, next, true)

	state[0] = 100
	next[1] = 100

	assert.Equal(t, []float64{1, 2}, tr.State)
	assert.Equal(t, []float64{3, 4}, tr.NextState)
	assert.Equal(t, 1, tr.Action)
	assert.True(t, tr.Done)
}
