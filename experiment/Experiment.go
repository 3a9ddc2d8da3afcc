// Package experiment implements functionality for running an experiment
package experiment

// Experiment runs episodes of an agent learning in an environment.
// Run runs episodes until the task is solved or the episode limit is
// reached and returns whether the task was solved. RunEpisode runs a
// single episode and returns whether the task is solved after it.
type Experiment interface {
	Run() (bool, error)
	RunEpisode() (bool, error)
}

// ShapeReward returns the reward the agent learns from. A transition
// which ends the episode without reaching the step limit is given
// penalty in place of its reward.
func ShapeReward(reward float64, done, timedOut bool, penalty float64) float64 {
	if done && !timedOut {
		return penalty
	}
	return reward
}

// CorrectScore removes the terminal penalty from the score of an
// episode. Episodes which reached the step limit were never penalized.
func CorrectScore(score float64, timedOut bool, penalty float64) float64 {
	if timedOut {
		return score
	}
	return score - penalty
}
