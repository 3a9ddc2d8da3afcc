package initwfn

import G "gorgonia.org/gorgonia"

// ScalingConfig implements a configuration of the variance scaling
// initializers of Glorot et al. and He et al.
type ScalingConfig struct {
	Kind Type
	Gain float64
}

// NewGlorotU returns a new Glorot uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return New(ScalingConfig{Kind: GlorotU, Gain: gain})
}

// NewGlorotN returns a new Glorot normal weight initializer
func NewGlorotN(gain float64) (*InitWFn, error) {
	return New(ScalingConfig{Kind: GlorotN, Gain: gain})
}

// NewHeU returns a new He uniform weight initializer. A gain of √2
// draws weights from U(-√(6/fanIn), √(6/fanIn)).
func NewHeU(gain float64) (*InitWFn, error) {
	return New(ScalingConfig{Kind: HeU, Gain: gain})
}

// NewHeN returns a new He normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	return New(ScalingConfig{Kind: HeN, Gain: gain})
}

// Type returns the type of initialization algorithm described by
// the configuration
func (s ScalingConfig) Type() Type {
	return s.Kind
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (s ScalingConfig) Create() G.InitWFn {
	switch s.Kind {
	case GlorotU:
		return G.GlorotU(s.Gain)
	case GlorotN:
		return G.GlorotN(s.Gain)
	case HeU:
		return G.HeU(s.Gain)
	case HeN:
		return G.HeN(s.Gain)
	}
	panic("create: not a variance scaling initializer: " + string(s.Kind))
}
