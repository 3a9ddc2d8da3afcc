// Package timestep implements timesteps of the agent-environment
// interaction, and the transitions built from them.
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes the reason an episode ended. Only TimeSteps with
// StepType Last carry a meaningful EndType.
type EndType int

const (
	// Unset means the episode has not ended
	Unset EndType = iota

	// TerminalStateReached means the environment entered a terminal
	// state, e.g. the pole fell or the cart left the track
	TerminalStateReached

	// Timeout means the episode step limit was reached without
	// entering a terminal state
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unset"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
		endType:     Unset,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records why the episode ended on this TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns why the episode ended on this TimeStep. Unset is
// returned for any TimeStep that is not the last in its episode.
func (t *TimeStep) EndType() EndType {
	if !t.Last() {
		return Unset
	}
	return t.endType
}

// TimedOut returns whether the episode reached its step limit without
// entering a terminal state.
func (t *TimeStep) TimedOut() bool {
	return t.EndType() == Timeout
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
