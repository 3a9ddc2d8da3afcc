package timestep

import "fmt"

// Transition is a single (s, a, r, s', done) experience tuple. A
// Transition is never modified after it has been created; NewTransition
// copies the state vectors so that callers may reuse their buffers.
type Transition struct {
	State     []float64
	Action    int
	Reward    float64
	NextState []float64
	Done      bool
}

// NewTransition returns a new Transition
func NewTransition(state []float64, action int, reward float64,
	nextState []float64, done bool) Transition {
	s := make([]float64, len(state))
	copy(s, state)

	next := make([]float64, len(nextState))
	copy(next, nextState)

	return Transition{
		State:     s,
		Action:    action,
		Reward:    reward,
		NextState: next,
		Done:      done,
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | State: %v  |  Action: %v  |  "+
		"Reward: %.2f  |  Next State: %v  |  Done: %v", t.State, t.Action,
		t.Reward, t.NextState, t.Done)
}
