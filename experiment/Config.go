package experiment

import (
	"fmt"
	"path/filepath"

	"github.com/samuelfneumann/ddqn/environment/envconfig"
)

// Config represents a configuration of an experiment
type Config struct {
	// Episodes is the maximum number of episodes to run
	Episodes int

	// The run is solved once the mean score of the last ScoreWindow
	// episodes exceeds SuccessThreshold. Fewer episodes are averaged
	// until ScoreWindow episodes have been run.
	SuccessThreshold float64
	ScoreWindow      int

	// TerminalPenalty replaces the reward of a transition that ends
	// the episode before the step limit is reached
	TerminalPenalty float64

	ModelDir string
	GraphDir string
	Name     string

	// Render saves a frame of the environment after each step
	Render bool
	Seed   uint64

	EnvConf envconfig.Config
}

// DefaultConfig returns the configuration used to learn CartPole
func DefaultConfig() Config {
	return Config{
		Episodes:         300,
		SuccessThreshold: 490,
		ScoreWindow:      10,
		TerminalPenalty:  -100,
		ModelDir:         "save_model",
		GraphDir:         "save_graph",
		Name:             "cartpole_ddqn",
		Render:           false,
		Seed:             0,
		EnvConf:          envconfig.DefaultConfig(),
	}
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: episodes must be positive")
	}
	if c.ScoreWindow <= 0 {
		return fmt.Errorf("validate: score window must be positive")
	}
	if c.Name == "" {
		return fmt.Errorf("validate: name must not be empty")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// WeightsFile returns the file the learned weights are saved to
func (c Config) WeightsFile() string {
	return filepath.Join(c.ModelDir, c.Name+".bin")
}

// AgentConfigFile returns the file the agent configuration is saved to
func (c Config) AgentConfigFile() string {
	return filepath.Join(c.ModelDir, c.Name+".json")
}

// PlotFile returns the file the diagnostic plot is saved to
func (c Config) PlotFile() string {
	return filepath.Join(c.GraphDir, c.Name+".png")
}

// ChartFile returns the file the interactive diagnostic chart is
// saved to
func (c Config) ChartFile() string {
	return filepath.Join(c.GraphDir, c.Name+".html")
}

// DiagnosticsFile returns the file the diagnostic series are saved to
func (c Config) DiagnosticsFile() string {
	return filepath.Join(c.GraphDir, c.Name+"_diagnostics.bin")
}

// FramesDir returns the directory rendered frames are saved in
func (c Config) FramesDir() string {
	return filepath.Join(c.GraphDir, "frames")
}
