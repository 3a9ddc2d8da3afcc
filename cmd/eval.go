package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/aunum/log"
	"github.com/samuelfneumann/ddqn/agent/ddqn"
	env "github.com/samuelfneumann/ddqn/environment"
	"github.com/samuelfneumann/ddqn/experiment"
	"github.com/samuelfneumann/ddqn/utils/progressbar"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

const evalEpisodes = 10

// EvalCommand returns the command which evaluates saved weights
func EvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run greedy episodes with the saved agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := Eval(experiment.DefaultConfig(), evalEpisodes)
			return err
		},
	}

	return cmd
}

// Eval loads the agent saved by Train and runs episodes greedily,
// returning the score of each episode
func Eval(expConf experiment.Config, episodes int) ([]float64, error) {
	agentConf, err := ddqn.LoadConfig(expConf.AgentConfigFile())
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	agentConf.Epsilon = 0
	agentConf.EpsilonMin = 0

	e, _, err := expConf.EnvConf.Create(expConf.Seed + 1)
	if err != nil {
		return nil, fmt.Errorf("eval: could not create environment: %w", err)
	}
	if closer, ok := e.(env.Closer); ok {
		defer closer.Close()
	}

	stateSize, actionSize, err := dims(e)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	agent, err := ddqn.New(stateSize, actionSize, agentConf, expConf.Seed)
	if err != nil {
		return nil, fmt.Errorf("eval: could not create agent: %w", err)
	}
	if err := agent.LoadWeights(expConf.WeightsFile()); err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	bar := progressbar.NewProgressBar(os.Stdout, 40, episodes,
		100*time.Millisecond)
	bar.SetLabel("evaluating")
	bar.Display()
	scores, err := experiment.Evaluate(e, agent, episodes,
		func(int, float64) { bar.Increment() })
	bar.Close()
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	log.Infof("mean score over %v episodes: %v", episodes,
		stat.Mean(scores, nil))
	return scores, nil
}
