// Package cmd implements the command line interface for training and
// evaluating the DDQN CartPole agent
package cmd

import (
	"github.com/samuelfneumann/ddqn/agent/ddqn"
	"github.com/samuelfneumann/ddqn/experiment"
	"github.com/spf13/cobra"
)

// RootCommand returns the root command, which trains the agent
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ddqn",
		Short:        "Train a Double DQN agent on CartPole",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Train(experiment.DefaultConfig(), ddqn.DefaultConfig())
		},
	}

	cmd.AddCommand(
		TrainCommand(),
		EvalCommand(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return RootCommand().Execute()
}
