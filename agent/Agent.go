// Package agent defines the interfaces shared by value-based agents
// and the function approximators they learn with
package agent

import (
	"github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Estimator maps batches of state vectors to one predicted value per
// action. Rows of states are individual states.
type Estimator interface {
	// Predict returns a matrix with one row of action values for each
	// row of states
	Predict(states *mat.Dense) (*mat.Dense, error)

	// Fit adjusts the estimator so that its predictions on states move
	// toward targets
	Fit(states, targets *mat.Dense, batchSize, epochs int) error

	// Parameters returns a copy of the estimator's parameters
	Parameters() [][]float64

	// SetParameters overwrites the estimator's parameters with params,
	// which must be laid out as returned by Parameters
	SetParameters(params [][]float64) error
}

// Policy selects actions in states
type Policy interface {
	// SelectAction returns the action to take in state along with the
	// largest action value predicted for state
	SelectAction(state []float64) (action int, qMax float64, err error)
}

// Learner implements a learning algorithm driven by recorded
// transitions
type Learner interface {
	// AppendSample records a transition for later training
	AppendSample(t timestep.Transition)

	// Ready returns whether enough transitions have been recorded for
	// Train to update the agent
	Ready() bool

	// Train performs a single training step
	Train() error

	// UpdateTargetModel synchronizes any target estimators with the
	// learned ones
	UpdateTargetModel() error
}

// Agent determines the implementation details of an agent or algorithm
type Agent interface {
	Policy
	Learner

	// Len returns the number of transitions the agent has in memory
	Len() int

	// Epsilon returns the current exploration rate
	Epsilon() float64

	// DiscountRewards returns the discounted return from each step of
	// an episode with the given rewards
	DiscountRewards(rewards []float64) []float64
}

// Saver is an Agent whose learned parameters can be persisted and
// restored
type Saver interface {
	Agent
	SaveWeights(filename string) error
	LoadWeights(filename string) error
}
