//go:build gym

// Package gym provides access to OpenAI Gym environments through the
// Go bindings found at https://github.com/samuelfneumann/GoGym.
//
// Environments only work with their default tasks and episode cutoffs.
// Since Gym reports only whether an episode ended, an episode that ends
// on or after the configured step cutoff is treated as a timeout.
package gym

import (
	"fmt"

	"github.com/samuelfneumann/ddqn/environment"
	"github.com/samuelfneumann/ddqn/environment/envconfig"
	ts "github.com/samuelfneumann/ddqn/timestep"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

func init() {
	envconfig.RegisterGym(New)
}

// GymEnv implements access to an OpenAI Gym environment using GoGym
type GymEnv struct {
	gogym.Environment

	currentStep ts.TimeStep
	discount    float64
	limit       *environment.StepLimit
}

// New returns a new GymEnv with the given name, which must be a legal
// name from the OpenAI Gym suite. Episodes ending at or after cutoff
// steps are marked as timeouts.
func New(name string, cutoff int, discount float64,
	seed uint64) (environment.Environment, ts.TimeStep, error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not create "+
			"environment: %w", err)
	}

	goGymEnv.Seed(int(seed))
	obs, err := goGymEnv.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not reset "+
			"environment: %w", err)
	}

	gymEnv := &GymEnv{
		Environment: goGymEnv,
		discount:    discount,
		limit:       environment.NewStepLimit(cutoff),
	}

	t := ts.New(ts.First, 0, discount, obs, 0)
	gymEnv.currentStep = t

	return gymEnv, t, nil
}

// Step takes a single environmental step
func (g *GymEnv) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	obs, reward, done, err := g.Environment.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"GoGym environment: %w", err)
	}

	t := ts.New(ts.Mid, reward, g.discount, obs, g.currentStep.Number+1)
	if done && !g.limit.End(&t) {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
	}
	g.currentStep = t

	return t, done, nil
}

// Reset resets the environment to some starting state
func (g *GymEnv) Reset() (ts.TimeStep, error) {
	obs, err := g.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
			"environment: %w", err)
	}

	t := ts.New(ts.First, 0, g.discount, obs, 0)
	g.currentStep = t

	return t, nil
}

// CurrentTimeStep returns the current timestep in the environment
func (g *GymEnv) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// ObservationSpec returns the observation spec of the environment
func (g *GymEnv) ObservationSpec() environment.Spec {
	return spaceSpec(g.ObservationSpace(), environment.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *GymEnv) ActionSpec() environment.Spec {
	return spaceSpec(g.ActionSpace(), environment.Action)
}

// DiscountSpec returns the discount specification of the environment
func (g *GymEnv) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{g.discount})

	return environment.NewSpec(shape, environment.Discount, low, low,
		environment.Continuous)
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *GymEnv) Close() error {
	g.Environment.Close()
	return nil
}

// space is the part of a GoGym space needed to build a Spec
type space interface {
	Low() []*mat.VecDense
	High() []*mat.VecDense
}

func spaceSpec(s space, t environment.SpecType) environment.Spec {
	var cardinality environment.Cardinality
	switch s.(type) {
	case *gogym.BoxSpace:
		cardinality = environment.Continuous
	case *gogym.DiscreteSpace:
		cardinality = environment.Discrete
	default:
		panic("spaceSpec: invalid space type, package gym supports " +
			"only GoGym's BoxSpace or DiscreteSpace")
	}

	low := s.Low()[0]
	high := s.High()[0]
	shape := mat.NewVecDense(low.Len(), nil)

	return environment.NewSpec(shape, t, low, high, cardinality)
}
