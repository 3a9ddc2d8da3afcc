package cartpole

import (
	"math"

	env "github.com/samuelfneumann/ddqn/environment"
	ts "github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	FailAngle    float64 = 12 * 2 * math.Pi / 360
	FailPosition float64 = 2.4
	EpisodeSteps int     = 500
	StartBound   float64 = 0.05
)

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to balance the pole on the cart in
// an upright position for as long as possible while keeping the cart
// on the track.
//
// The reward is +1 for every timestep, including the one on which the
// episode ends.
//
// Episodes end after a step limit, when the pole falls past the angle
// threshold θ, or when the cart leaves the track.
type Balance struct {
	env.Starter
	stepLimiter  *env.StepLimit
	stateLimiter *env.IntervalLimit
}

// NewBalance creates and returns a new Balance task
func NewBalance(s env.Starter, episodeSteps int, failAngle,
	failPosition float64) *Balance {
	stepLimiter := env.NewStepLimit(episodeSteps)

	legal := []r1.Interval{
		{Min: -failPosition, Max: failPosition},
		{Min: -failAngle, Max: failAngle},
	}
	featureIndices := []int{0, 2}
	stateLimiter := env.NewIntervalLimit(legal, featureIndices,
		ts.TerminalStateReached)

	return &Balance{s, stepLimiter, stateLimiter}
}

// NewDefaultStarter returns a Starter which draws each state feature
// uniformly from [-0.05, 0.05]
func NewDefaultStarter(seed uint64) env.UniformStarter {
	bounds := make([]r1.Interval, ObservationDims)
	for i := range bounds {
		bounds[i] = r1.Interval{Min: -StartBound, Max: StartBound}
	}
	return env.NewUniformStarter(bounds, seed)
}

// NewDefaultBalance returns the standard balancing task with a 12
// degree pole limit, a 2.4 unit track limit and 500 step episodes
func NewDefaultBalance(seed uint64) *Balance {
	return NewBalance(NewDefaultStarter(seed), EpisodeSteps, FailAngle,
		FailPosition)
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
//
// Failure takes precedence, so a failure on the final allowed step is
// not a timeout.
func (b *Balance) End(t *ts.TimeStep) bool {
	if end := b.stateLimiter.End(t); end {
		return true
	}
	if end := b.stepLimiter.End(t); end {
		return true
	}
	return false
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (b *Balance) GetReward(_ mat.Vector, _ mat.Vector, _ mat.Vector) float64 {
	return 1.0
}

// AtGoal returns whether or not the pole is still balanced with the
// cart on the track
func (b *Balance) AtGoal(state mat.Matrix) bool {
	r, c := state.Dims()
	obs := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			obs[i*c+j] = state.At(i, j)
		}
	}
	return !b.stateLimiter.Outside(obs)
}

// Min returns the minimum possible reward that can be received in the
// environment
func (b *Balance) Min() float64 {
	return 1.0
}

// Max returns the maximum possible reward that can be received in the
// environment
func (b *Balance) Max() float64 {
	return 1.0
}

// RewardSpec returns the reward specification for the environment
func (b *Balance) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{b.Min()})
	upperBound := mat.NewVecDense(1, []float64{b.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}
