package environment

import (
	"testing"

	ts "github.com/samuelfneumann/ddqn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(5)

	step := ts.New(ts.Mid, 1, 1, mat.NewVecDense(1, nil), 4)
	assert.False(t, limit.End(&step))
	assert.False(t, step.Last())

	step.Number = 5
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.True(t, step.TimedOut())
}

func TestIntervalLimit(t *testing.T) {
	limit := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 1}}, []int{1},
		ts.TerminalStateReached)

	step := ts.New(ts.Mid, 1, 1, mat.NewVecDense(2, []float64{5, 0.5}), 1)
	assert.False(t, limit.End(&step))

	step.Observation.SetVec(1, -1.5)
	assert.True(t, limit.End(&step))
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
}

func TestUniformStarterBounds(t *testing.T) {
	bounds := []r1.Interval{{Min: -0.05, Max: 0.05}, {Min: 2, Max: 3}}
	s := NewUniformStarter(bounds, 42)

	for i := 0; i < 100; i++ {
		start := s.Start()
		require.Equal(t, 2, start.Len())
		for j, b := range bounds {
			assert.GreaterOrEqual(t, start.AtVec(j), b.Min)
			assert.LessOrEqual(t, start.AtVec(j), b.Max)
		}
	}
}

func TestNumActions(t *testing.T) {
	spec := NewSpec(mat.NewVecDense(1, nil), Action,
		mat.NewVecDense(1, []float64{0}), mat.NewVecDense(1, []float64{1}),
		Discrete)
	n, err := NumActions(spec)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	spec.Cardinality = Continuous
	_, err = NumActions(spec)
	assert.Error(t, err)
}
