package initwfn

import G "gorgonia.org/gorgonia"

// ZeroesConfig implements a configuration of the zeroes initializer
type ZeroesConfig struct{}

// NewZeroes returns a new weight initializer that sets all weights to 0
func NewZeroes() (*InitWFn, error) {
	return New(ZeroesConfig{})
}

// Type returns the type of initialization algorithm described by
// the configuration
func (z ZeroesConfig) Type() Type {
	return Zeroes
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (z ZeroesConfig) Create() G.InitWFn {
	return G.Zeroes()
}
