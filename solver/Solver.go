// Package solver wraps Gorgonia Solvers so that they can be JSON
// serialized into configuration files.
package solver

import (
	"encoding/json"
	"fmt"
	"reflect"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// configTypes maps each Type to the concrete Config that describes it
var configTypes = map[Type]reflect.Type{
	Adam:    reflect.TypeOf(AdamConfig{}),
	Vanilla: reflect.TypeOf(VanillaConfig{}),
	RMSProp: reflect.TypeOf(RMSPropConfig{}),
}

// Config implements a Gorgonia Solver configuration and can be used to
// create the Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool

	// Validate returns an error if the hyperparameters are illegal
	Validate() error
}

// Solver wraps Gorgonia Solvers so that they can be JSON marshalled and
// unmarshalled.
//
// Gorgonia Solvers keep per-parameter state such as moment estimates,
// so each network being trained should be given its own Gorgonia Solver
// through Config.Create rather than sharing the embedded one.
type Solver struct {
	G.Solver `json:"-"`
	Type
	Config
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newSolver: %w", err)
	}

	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	ty, ok := configTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: unknown solver type %v", raw.Type)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	solver, err := newSolver(raw.Type, value.Elem().Interface().(Config))
	if err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}
	*s = *solver

	return nil
}
