// Package ddqn implements the Double Deep Q-Network algorithm
package ddqn

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/ddqn/agent"
	"github.com/samuelfneumann/ddqn/expreplay"
	"github.com/samuelfneumann/ddqn/network"
	"github.com/samuelfneumann/ddqn/timestep"
	"github.com/samuelfneumann/ddqn/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Agent implements Double DQN. An online estimator selects actions
// and is trained on batches drawn from an experience replay buffer. Its
// update targets use the online estimator to choose the greedy action
// in the next state and a target estimator to evaluate that action. The
// target estimator only changes when UpdateTargetModel is called.
//
// Agent is not safe for concurrent use.
type Agent struct {
	config     Config
	stateSize  int
	actionSize int

	online agent.Estimator
	target agent.Estimator
	memory *expreplay.Buffer

	epsilon float64
	rng     *rand.Rand
}

// New creates and returns a new DDQN agent whose online and target
// estimators are neural networks described by config
func New(stateSize, actionSize int, config Config, seed uint64) (*Agent,
	error) {
	if config.Solver == nil || config.InitWFn == nil {
		return nil, fmt.Errorf("new: config must specify a solver and a " +
			"weight initializer")
	}

	nets := make([]*network.MLP, 2)
	for i := range nets {
		// Solvers keep per-parameter state, so each network needs its own
		net, err := network.NewMLP(stateSize, actionSize, config.BatchSize,
			config.HiddenSizes, config.Activations, config.InitWFn.InitWFn(),
			config.Solver.Config.Create())
		if err != nil {
			return nil, fmt.Errorf("new: could not create network: %w", err)
		}
		nets[i] = net
	}

	return NewWithEstimators(stateSize, actionSize, config, nets[0], nets[1],
		seed)
}

// NewWithEstimators creates and returns a new DDQN agent with the given
// online and target estimators. The target estimator is synchronized
// with the online estimator before returning.
func NewWithEstimators(stateSize, actionSize int, config Config, online,
	target agent.Estimator, seed uint64) (*Agent, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if stateSize < 1 || actionSize < 1 {
		return nil, fmt.Errorf("new: state and action sizes must be positive")
	}

	memory, err := expreplay.New(config.MemoryCapacity, seed)
	if err != nil {
		return nil, fmt.Errorf("new: could not create replay buffer: %w", err)
	}

	a := &Agent{
		config:     config,
		stateSize:  stateSize,
		actionSize: actionSize,
		online:     online,
		target:     target,
		memory:     memory,
		epsilon:    config.Epsilon,
		rng:        rand.New(rand.NewSource(seed + 1)),
	}

	if err := a.UpdateTargetModel(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return a, nil
}

// SelectAction selects an action in state using an epsilon greedy
// policy over the online estimator's action values. With probability
// epsilon a uniformly random action is selected, otherwise the action
// with the largest value is selected, breaking ties by lowest index.
// Both cases also return the largest predicted action value.
func (a *Agent) SelectAction(state []float64) (int, float64, error) {
	if len(state) != a.stateSize {
		return 0, 0, fmt.Errorf("selectAction: invalid state size"+
			"\n\twant(%v)\n\thave(%v)", a.stateSize, len(state))
	}

	q, err := a.online.Predict(mat.NewDense(1, a.stateSize, state))
	if err != nil {
		return 0, 0, fmt.Errorf("selectAction: could not predict action "+
			"values: %w", err)
	}
	greedy, qMax := floatutils.Argmax(q.RawRowView(0))

	if a.rng.Float64() < a.epsilon {
		return a.rng.Intn(a.actionSize), qMax, nil
	}
	return greedy, qMax, nil
}

// AppendSample records a transition in the replay buffer, evicting the
// oldest transition if the buffer is full
func (a *Agent) AppendSample(t timestep.Transition) {
	if len(t.State) != a.stateSize || len(t.NextState) != a.stateSize {
		panic(fmt.Sprintf("appendSample: transition states must have %v "+
			"features", a.stateSize))
	}
	if t.Action < 0 || t.Action >= a.actionSize {
		panic(fmt.Sprintf("appendSample: illegal action %v", t.Action))
	}
	a.memory.Add(t)
}

// UpdateTargetModel copies the online estimator's parameters into the
// target estimator
func (a *Agent) UpdateTargetModel() error {
	if err := a.target.SetParameters(a.online.Parameters()); err != nil {
		return fmt.Errorf("updateTargetModel: %w", err)
	}
	return nil
}

// Train performs a single training step. Training steps are skipped
// until the replay buffer holds at least Config.TrainStart transitions.
// Each step first decays epsilon, then fits the online estimator for
// one epoch on a uniformly sampled batch with targets
//
//	r                       if the transition is terminal
//	r + γ Q'(s', argmax Q(s', ·))   otherwise
//
// where Q is the online estimator and Q' the target estimator. Only the
// value of the action taken is changed from the online estimator's
// current predictions.
func (a *Agent) Train() error {
	if !a.Ready() {
		return nil
	}

	if a.epsilon > a.config.EpsilonMin {
		a.epsilon = floatutils.Clip(a.epsilon*a.config.EpsilonDecay,
			a.config.EpsilonMin, a.epsilon)
	}

	batchSize := a.config.BatchSize
	batch, err := a.memory.Sample(batchSize)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	states := mat.NewDense(batchSize, a.stateSize, nil)
	nextStates := mat.NewDense(batchSize, a.stateSize, nil)
	for i, t := range batch {
		states.SetRow(i, t.State)
		nextStates.SetRow(i, t.NextState)
	}

	target, err := a.online.Predict(states)
	if err != nil {
		return fmt.Errorf("train: could not predict current values: %w", err)
	}
	targetNext, err := a.online.Predict(nextStates)
	if err != nil {
		return fmt.Errorf("train: could not select next actions: %w", err)
	}
	targetVal, err := a.target.Predict(nextStates)
	if err != nil {
		return fmt.Errorf("train: could not evaluate next actions: %w", err)
	}

	for i, t := range batch {
		if t.Done {
			target.Set(i, t.Action, t.Reward)
			continue
		}
		next, _ := floatutils.Argmax(targetNext.RawRowView(i))
		target.Set(i, t.Action, t.Reward+a.config.Gamma*targetVal.At(i, next))
	}

	if err := a.online.Fit(states, target, batchSize, 1); err != nil {
		return fmt.Errorf("train: could not fit online estimator: %w", err)
	}
	return nil
}

// Ready returns whether the replay buffer holds at least
// Config.TrainStart transitions
func (a *Agent) Ready() bool {
	return a.memory.Len() >= a.config.TrainStart
}

// DiscountRewards returns the discounted return from each step of an
// episode with the given rewards, using the agent's discount factor
func (a *Agent) DiscountRewards(rewards []float64) []float64 {
	discounted := make([]float64, len(rewards))
	var running float64
	for t := len(rewards) - 1; t >= 0; t-- {
		running = running*a.config.Gamma + rewards[t]
		discounted[t] = running
	}
	return discounted
}

// Epsilon returns the current exploration rate
func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// Len returns the number of transitions in the replay buffer
func (a *Agent) Len() int {
	return a.memory.Len()
}

// Config returns the configuration of the agent
func (a *Agent) Config() Config {
	return a.config
}

// SaveWeights writes the online estimator's parameters to filename
func (a *Agent) SaveWeights(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveWeights: could not create file: %w", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(a.online.Parameters()); err != nil {
		return fmt.Errorf("saveWeights: could not encode parameters: %w", err)
	}
	return file.Close()
}

// LoadWeights restores the online estimator's parameters from a file
// written by SaveWeights and synchronizes the target estimator
func (a *Agent) LoadWeights(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("loadWeights: could not open file: %w", err)
	}
	defer file.Close()

	var params [][]float64
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&params); err != nil {
		return fmt.Errorf("loadWeights: could not decode parameters: %w", err)
	}

	if err := a.online.SetParameters(params); err != nil {
		return fmt.Errorf("loadWeights: %w", err)
	}
	if err := a.UpdateTargetModel(); err != nil {
		return fmt.Errorf("loadWeights: %w", err)
	}
	return nil
}
