package ddqn

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/ddqn/initwfn"
	"github.com/samuelfneumann/ddqn/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())

	assert.Equal(t, 0.999, c.Gamma)
	assert.Equal(t, 64, c.BatchSize)
	assert.Equal(t, 1000, c.TrainStart)
	assert.Equal(t, 2000, c.MemoryCapacity)
	assert.Equal(t, []int{24, 24}, c.HiddenSizes)
	assert.Equal(t, solver.Adam, c.Solver.Type)
	assert.Equal(t, initwfn.HeU, c.InitWFn.Type)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"activations":      func(c *Config) { c.Activations = nil },
		"gamma":            func(c *Config) { c.Gamma = 1.5 },
		"epsilon min":      func(c *Config) { c.EpsilonMin = 2 },
		"epsilon decay":    func(c *Config) { c.EpsilonDecay = 0 },
		"batch":            func(c *Config) { c.BatchSize = 0 },
		"train start":      func(c *Config) { c.TrainStart = 10 },
		"memory too small": func(c *Config) { c.MemoryCapacity = 500 },
	}

	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfigSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig()
	require.NoError(t, c.Save(filename))

	loaded, err := LoadConfig(filename)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	assert.Equal(t, c.HiddenSizes, loaded.HiddenSizes)
	assert.Equal(t, c.Gamma, loaded.Gamma)
	assert.Equal(t, c.Solver.Config, loaded.Solver.Config)
	assert.Equal(t, c.InitWFn.Config, loaded.InitWFn.Config)
	require.Len(t, loaded.Activations, 2)
	assert.Equal(t, "relu", loaded.Activations[0].String())
}
