package experiment

import (
	"fmt"

	"github.com/samuelfneumann/ddqn/agent"
	env "github.com/samuelfneumann/ddqn/environment"
	"gonum.org/v1/gonum/mat"
)

// Evaluate runs episodes of policy p in environment e without learning
// and returns the undiscounted return of each episode. If after is not
// nil, it is called with the episode number and score as each episode
// finishes.
func Evaluate(e env.Environment, p agent.Policy, episodes int,
	after func(episode int, score float64)) ([]float64, error) {
	scores := make([]float64, 0, episodes)
	action := mat.NewVecDense(1, nil)

	for i := 0; i < episodes; i++ {
		step, err := e.Reset()
		if err != nil {
			return scores, fmt.Errorf("evaluate: could not reset "+
				"environment: %w", err)
		}

		var score float64
		for done := false; !done; {
			a, _, err := p.SelectAction(observation(step))
			if err != nil {
				return scores, fmt.Errorf("evaluate: could not select "+
					"action: %w", err)
			}

			action.SetVec(0, float64(a))
			step, done, err = e.Step(action)
			if err != nil {
				return scores, fmt.Errorf("evaluate: could not step "+
					"environment: %w", err)
			}
			score += step.Reward
		}

		scores = append(scores, score)
		if after != nil {
			after(i, score)
		}
	}
	return scores, nil
}
