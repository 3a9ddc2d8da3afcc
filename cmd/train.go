package cmd

import (
	"fmt"
	"os"

	"github.com/aunum/log"
	"github.com/samuelfneumann/ddqn/agent/ddqn"
	env "github.com/samuelfneumann/ddqn/environment"
	"github.com/samuelfneumann/ddqn/experiment"
	"github.com/samuelfneumann/ddqn/experiment/checkpointer"
	"github.com/samuelfneumann/ddqn/experiment/graph"
	"github.com/samuelfneumann/ddqn/experiment/tracker"
	"github.com/spf13/cobra"
)

// TrainCommand returns the command which trains the agent until the
// task is solved
func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the agent until CartPole is solved",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Train(experiment.DefaultConfig(), ddqn.DefaultConfig())
		},
	}

	return cmd
}

// Train trains a DDQN agent configured by agentConf in the experiment
// configured by expConf. On success, the learned weights and agent
// configuration are saved to the experiment's model directory.
func Train(expConf experiment.Config, agentConf ddqn.Config) error {
	e, _, err := expConf.EnvConf.Create(expConf.Seed)
	if err != nil {
		return fmt.Errorf("train: could not create environment: %w", err)
	}
	if closer, ok := e.(env.Closer); ok {
		defer closer.Close()
	}

	stateSize, actionSize, err := dims(e)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	agent, err := ddqn.New(stateSize, actionSize, agentConf, expConf.Seed)
	if err != nil {
		return fmt.Errorf("train: could not create agent: %w", err)
	}

	if err := os.MkdirAll(expConf.GraphDir, 0755); err != nil {
		return fmt.Errorf("train: could not create graph directory: %w", err)
	}

	final := checkpointer.NewFinal()
	final.Register(checkpointer.SaveFunc(agent.SaveWeights),
		expConf.WeightsFile())
	final.Register(agentConf, expConf.AgentConfigFile())

	exp, err := experiment.NewEpisodic(e, agent, expConf, final,
		tracker.NewDiagnostics(expConf.DiagnosticsFile()),
		graph.NewPNG(expConf.PlotFile()),
		graph.NewHTML(expConf.ChartFile()),
	)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	solved, err := exp.Run()
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if !solved {
		log.Infof("not solved after %v episodes", expConf.Episodes)
	}
	return nil
}

// dims returns the number of state features and discrete actions of
// an environment
func dims(e env.Environment) (int, int, error) {
	stateSize := e.ObservationSpec().Shape.Len()
	actionSize, err := env.NumActions(e.ActionSpec())
	if err != nil {
		return 0, 0, fmt.Errorf("dims: %w", err)
	}
	return stateSize, actionSize, nil
}
