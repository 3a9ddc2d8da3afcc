// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/ddqn/environment"
	"github.com/samuelfneumann/ddqn/environment/classiccontrol/cartpole"
	ts "github.com/samuelfneumann/ddqn/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Cartpole EnvName = "Cartpole"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Balance TaskName = "Balance"
)

// GymFactory creates an OpenAI Gym environment by name
type GymFactory func(name string, cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error)

// gymFactory is set when the gym backend is compiled in
var gymFactory GymFactory

// RegisterGym registers the constructor used for Gym environments
func RegisterGym(f GymFactory) {
	gymFactory = f
}

// GymAvailable returns whether Gym environments can be created
func GymAvailable() bool {
	return gymFactory != nil
}

// Config implements a specific configuration of a specific environment
// and specific task. When Gym is set, Environment holds the Gym ID of
// the environment instead and Task is ignored.
type Config struct {
	Environment   EnvName
	Task          TaskName
	EpisodeCutoff uint
	Discount      float64
	Gym           bool
}

// DefaultConfig returns the configuration of the built-in CartPole
// balancing task
func DefaultConfig() Config {
	return Config{
		Environment:   Cartpole,
		Task:          Balance,
		EpisodeCutoff: uint(cartpole.EpisodeSteps),
		Discount:      1.0,
	}
}

// Validate returns an error if the configuration cannot be created
func (c Config) Validate() error {
	if c.EpisodeCutoff == 0 {
		return fmt.Errorf("validate: episode cutoff must be positive")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]")
	}
	if c.Gym {
		if !GymAvailable() {
			return fmt.Errorf("validate: gym environments require " +
				"building with the gym tag")
		}
		return nil
	}
	if c.Environment != Cartpole {
		return fmt.Errorf("validate: no such environment %v", c.Environment)
	}
	if c.Task != Balance {
		return fmt.Errorf("validate: %v environment has no task %v",
			c.Environment, c.Task)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	if c.Gym {
		return gymFactory(string(c.Environment), int(c.EpisodeCutoff),
			c.Discount, seed)
	}

	e, step := CreateCartpole(c.Task, int(c.EpisodeCutoff), seed, c.Discount)
	return e, step, nil
}

// CreateCartpole is a factory for creating the Cartpole environment
// with default physical parameters and default task parameters.
func CreateCartpole(taskName TaskName, cutoff int, seed uint64,
	discount float64) (*cartpole.Cartpole, ts.TimeStep) {
	var task env.Task
	switch taskName {
	case Balance:
		task = cartpole.NewBalance(cartpole.NewDefaultStarter(seed), cutoff,
			cartpole.FailAngle, cartpole.FailPosition)

	default:
		panic(fmt.Sprintf("createCartpole: Cartpole environment has "+
			"no task %v", taskName))
	}

	return cartpole.New(task, discount)
}
