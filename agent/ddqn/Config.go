package ddqn

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/samuelfneumann/ddqn/initwfn"
	"github.com/samuelfneumann/ddqn/network"
	"github.com/samuelfneumann/ddqn/solver"
)

// Config implements a configuration for a DDQN agent
type Config struct {
	HiddenSizes []int                 // Layer sizes in neural net
	Activations []*network.Activation // Activation of each hidden layer
	Solver      *solver.Solver        // Solver for learning weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	Gamma float64 // Discount factor

	// Epsilon greedy schedule
	Epsilon      float64
	EpsilonDecay float64 // Multiplicative decay per training step
	EpsilonMin   float64

	BatchSize      int
	TrainStart     int // Transitions in memory before training begins
	MemoryCapacity int
}

// DefaultConfig returns the configuration used for CartPole: two hidden
// layers of 24 ReLU units with He uniform initialization trained by
// Adam on the mean squared error.
func DefaultConfig() Config {
	// The loss averages over the batch, so Adam should not rescale
	// gradients by the batch size
	adam, err := solver.NewDefaultAdam(0.001, 1)
	if err != nil {
		panic(fmt.Sprintf("defaultConfig: could not create solver: %v", err))
	}

	init, err := initwfn.NewHeU(math.Sqrt2)
	if err != nil {
		panic(fmt.Sprintf("defaultConfig: could not create initializer: %v",
			err))
	}

	return Config{
		HiddenSizes:    []int{24, 24},
		Activations:    []*network.Activation{network.ReLU(), network.ReLU()},
		Solver:         adam,
		InitWFn:        init,
		Gamma:          0.999,
		Epsilon:        1.0,
		EpsilonDecay:   0.999,
		EpsilonMin:     0.01,
		BatchSize:      64,
		TrainStart:     1000,
		MemoryCapacity: 2000,
	}
}

// Validate checks a Config to ensure it is a valid configuration of a
// DDQN agent
func (c Config) Validate() error {
	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.HiddenSizes), len(c.Activations))
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1] but got %v",
			c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1] but got %v",
			c.Epsilon)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("validate: minimum epsilon must be in [0, %v] "+
			"but got %v", c.Epsilon, c.EpsilonMin)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("validate: epsilon decay must be in (0, 1] but "+
			"got %v", c.EpsilonDecay)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be positive")
	}
	if c.TrainStart < c.BatchSize {
		return fmt.Errorf("validate: training cannot start before a batch "+
			"can be sampled\n\twant(>=%v)\n\thave(%v)", c.BatchSize,
			c.TrainStart)
	}
	if c.MemoryCapacity < c.TrainStart {
		return fmt.Errorf("validate: memory capacity %v cannot hold the %v "+
			"transitions needed to start training", c.MemoryCapacity,
			c.TrainStart)
	}
	return nil
}

// Save writes the Config as JSON to filename
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("save: could not marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("save: could not write config: %w", err)
	}
	return nil
}

// LoadConfig reads a Config written by Save
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not unmarshal "+
			"config: %w", err)
	}
	return c, nil
}
