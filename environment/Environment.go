// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	ts "github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode ends. If the episode should end on
// a TimeStep, End adjusts its StepType to timestep.Last and records the
// appropriate EndType.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme and episode termination for taking
// actions in some environment
type Task interface {
	Starter
	Ender

	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool
	RewardSpec() Spec
	Min() float64 // Minimum attainable reward
	Max() float64 // Maximum attainable reward
}

// Environment implements a simulated environment
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step, returning the next TimeStep
	// and whether the episode has ended
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent TimeStep
	CurrentTimeStep() ts.TimeStep

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}

// Renderer is an Environment that can draw its current state to an
// image file
type Renderer interface {
	Environment
	Render(filename string) error
}

// Closer is an Environment that holds resources which must be released
// once the environment is no longer needed
type Closer interface {
	Environment
	Close() error
}
