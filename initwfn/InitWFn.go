// Package initwfn wraps Gorgonia weight initializers so that they can
// be JSON serialized into configuration files.
package initwfn

import (
	"encoding/json"
	"fmt"
	"reflect"

	G "gorgonia.org/gorgonia"
)

// Type describes the different weight initializers that are available
type Type string

// Available InitWFn types
const (
	GlorotU Type = "GlorotU"
	GlorotN Type = "GlorotN"
	HeU     Type = "HeU"
	HeN     Type = "HeN"
	Zeroes  Type = "Zeroes"
)

// configTypes maps each Type to the concrete Config that describes it
var configTypes = map[Type]reflect.Type{
	GlorotU: reflect.TypeOf(ScalingConfig{}),
	GlorotN: reflect.TypeOf(ScalingConfig{}),
	HeU:     reflect.TypeOf(ScalingConfig{}),
	HeN:     reflect.TypeOf(ScalingConfig{}),
	Zeroes:  reflect.TypeOf(ZeroesConfig{}),
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type
}

// InitWFn wraps Gorgonia InitWFn so that they can be JSON marshalled
// and unmarshalled
type InitWFn struct {
	initWFn G.InitWFn
	Type
	Config
}

// New returns a new InitWFn described by c
func New(c Config) (*InitWFn, error) {
	if _, ok := configTypes[c.Type()]; !ok {
		return nil, fmt.Errorf("new: unknown initializer type %v", c.Type())
	}

	init := InitWFn{Type: c.Type(), Config: c}
	init.initWFn = c.Create()

	return &init, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %v}", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	ty, ok := configTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: unknown initializer type %v",
			raw.Type)
	}

	value := reflect.New(ty)
	if len(raw.Config) > 0 {
		if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
			return fmt.Errorf("unmarshalJSON: %w", err)
		}
	}
	config := value.Elem().Interface().(Config)
	if config.Type() != raw.Type {
		return fmt.Errorf("unmarshalJSON: config describes %v but type is %v",
			config.Type(), raw.Type)
	}

	i.Type = raw.Type
	i.Config = config
	i.initWFn = config.Create()

	return nil
}
