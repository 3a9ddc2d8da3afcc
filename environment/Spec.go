package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action, an observation, a discount, or a
// reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Cardinality determines the cardinality of a number (discrete or
// continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      *mat.VecDense
	Type       SpecType
	LowerBound *mat.VecDense
	UpperBound *mat.VecDense
	Cardinality
}

// NewSpec constructs a new environment specification.
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// argument describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape *mat.VecDense, t SpecType, lowerBound,
	upperBound *mat.VecDense, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NumActions returns the number of discrete actions described by an
// action Spec. Actions must be one-dimensional and enumerated from 0.
func NumActions(s Spec) (int, error) {
	if s.Type != Action {
		return 0, fmt.Errorf("numActions: not an action spec")
	}
	if s.Cardinality != Discrete {
		return 0, fmt.Errorf("numActions: cannot use non-discrete actions")
	}
	if s.LowerBound.Len() != 1 {
		return 0, fmt.Errorf("numActions: actions must be 1-dimensional")
	}
	if s.LowerBound.AtVec(0) != 0.0 {
		return 0, fmt.Errorf("numActions: actions must be enumerated " +
			"starting from 0")
	}
	return int(s.UpperBound.AtVec(0)) + 1, nil
}
