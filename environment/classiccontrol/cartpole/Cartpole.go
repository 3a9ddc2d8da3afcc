// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/ddqn/environment"
	ts "github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables reported by the observation spec
	PositionBounds        float64 = 2 * FailPosition
	SpeedBounds           float64 = math.MaxFloat64
	AngleBounds           float64 = 2 * FailAngle
	AngularVelocityBounds float64 = math.MaxFloat64

	// Discrete Actions
	ActionDims        int = 1
	ObservationDims   int = 4
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 1
)

// Cartpole implements the classic control environment Cartpole with
// discrete actions. In this environment, a pole is attached to a cart,
// which can move horizontally along a frictionless track. Gravity pulls
// the pole downwards so that balancing it in an upright position
// requires constant correction.
//
// The state features are continuous and consist of the cart's x
// position and speed, as well as the pole's angle from the positive
// y-axis and the pole's angular velocity. The dynamics are integrated
// with the explicit Euler method.
//
// Actions are discrete, consisting of the direction to apply
// horizontal force to the cart:
//
//	Action		Meaning
//	  0			Push cart left
//	  1			Push cart right
//
// Illegal actions will cause the environment to panic.
//
// Cartpole implements the environment.Environment interface
type Cartpole struct {
	env.Task
	lastStep       ts.TimeStep
	discount       float64
	gravity        float64
	forceMag       float64
	poleMass       float64
	halfPoleLength float64
	cartMass       float64
	dt             float64
}

// New constructs a new Cartpole environment
func New(t env.Task, discount float64) (*Cartpole, ts.TimeStep) {
	state := t.Start()
	validateState(state)

	firstStep := ts.New(ts.First, 0.0, discount, state, 0)

	cartpole := Cartpole{t, firstStep, discount, Gravity, ForceMag, PoleMass,
		HalfPoleLength, CartMass, Dt}

	return &cartpole, firstStep
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (c *Cartpole) Reset() (ts.TimeStep, error) {
	state := c.Start()
	validateState(state)

	startStep := ts.New(ts.First, 0, c.discount, state, 0)
	c.lastStep = startStep

	return startStep, nil
}

// CurrentTimeStep returns the last TimeStep that occurred in the
// environment
func (c *Cartpole) CurrentTimeStep() ts.TimeStep {
	return c.lastStep
}

// ActionSpec returns the action specification of the environment
func (c *Cartpole) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Cartpole) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	lowerBound := mat.NewVecDense(ObservationDims, []float64{
		-PositionBounds, -SpeedBounds, -AngleBounds, -AngularVelocityBounds,
	})
	upperBound := mat.NewVecDense(ObservationDims, []float64{
		PositionBounds, SpeedBounds, AngleBounds, AngularVelocityBounds,
	})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (c *Cartpole) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{c.discount})
	upperBound := mat.NewVecDense(1, []float64{c.discount})

	return env.NewSpec(shape, env.Discount, lowerBound, upperBound,
		env.Continuous)
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended. Legal actions are in the set {0, 1}. Actions
// outside this range will cause the environment to panic.
func (c *Cartpole) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		panic("actions should be 1-dimensional")
	}

	action := int(a.AtVec(0))
	if action < MinDiscreteAction || action > MaxDiscreteAction ||
		float64(action) != a.AtVec(0) {
		panic(fmt.Sprintf("illegal action %v ∉ {0, 1}", a.AtVec(0)))
	}

	force := c.forceMag
	if action == 0 {
		force = -c.forceMag
	}

	newState := c.nextState(force)
	reward := c.GetReward(c.lastStep.Observation, a, newState)
	nextStep := ts.New(ts.Mid, reward, c.discount, newState,
		c.lastStep.Number+1)

	// Check if the step ends the episode
	c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// nextState computes the state reached from the current state when
// force is applied to the cart for one integration step
func (c *Cartpole) nextState(force float64) *mat.VecDense {
	state := c.lastStep.Observation
	x, xDot := state.AtVec(0), state.AtVec(1)
	th, thDot := state.AtVec(2), state.AtVec(3)

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := c.poleMass + c.cartMass
	poleMassLength := c.poleMass * c.halfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (c.gravity*sinTheta - cosTheta*temp) / (c.halfPoleLength *
		(4.0/3.0 - c.poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/totalMass

	// Euler kinematic integration
	x += c.dt * xDot
	xDot += c.dt * xAcc
	th += c.dt * thDot
	thDot += c.dt * thAcc

	return mat.NewVecDense(ObservationDims, []float64{x, xDot, th, thDot})
}

// validateState ensures that a starting state has the correct
// dimensions and lies inside the region where an episode can run
func validateState(obs *mat.VecDense) {
	if obs.Len() != ObservationDims {
		panic(fmt.Sprintf("state should have %v features but got %v",
			ObservationDims, obs.Len()))
	}

	position := r1.Interval{Min: -FailPosition, Max: FailPosition}
	if obs.AtVec(0) < position.Min || obs.AtVec(0) > position.Max {
		panic(fmt.Sprintf("position is not within bounds %v", position))
	}

	angle := r1.Interval{Min: -FailAngle, Max: FailAngle}
	if obs.AtVec(2) < angle.Min || obs.AtVec(2) > angle.Max {
		panic(fmt.Sprintf("angle is not within bounds %v", angle))
	}
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	position, speed := state.AtVec(0), state.AtVec(1)
	angle, velocity := state.AtVec(2), state.AtVec(3)

	return fmt.Sprintf(msg, position, speed, angle, velocity)
}
