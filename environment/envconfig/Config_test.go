package envconfig

import (
	"testing"

	"github.com/samuelfneumann/ddqn/environment/classiccontrol/cartpole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCreateDefault(t *testing.T) {
	e, step, err := DefaultConfig().Create(7)
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.IsType(t, &cartpole.Cartpole{}, e)
	assert.Equal(t, cartpole.ObservationDims, e.ObservationSpec().Shape.Len())
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Task = "SwingUp"
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.EpisodeCutoff = 0
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Gym = true
	c.Environment = "CartPole-v1"
	assert.Equal(t, GymAvailable(), c.Validate() == nil)
}

func TestCustomCutoff(t *testing.T) {
	c := DefaultConfig()
	c.EpisodeCutoff = 2
	e, _, err := c.Create(1)
	require.NoError(t, err)

	// Alternate pushes keep the pole up for two steps
	done := false
	steps := 0
	for !done {
		step, d, err := e.Step(actionVec(steps % 2))
		require.NoError(t, err)
		done = d
		steps++
		if done {
			assert.True(t, step.TimedOut())
		}
	}
	assert.Equal(t, 2, steps)
}

func actionVec(a int) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}
