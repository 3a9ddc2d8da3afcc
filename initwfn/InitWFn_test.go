package initwfn

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestJSON(t *testing.T) {
	init, err := NewHeU(math.Sqrt2)
	require.NoError(t, err)

	data, err := json.Marshal(init)
	require.NoError(t, err)

	var decoded InitWFn
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, HeU, decoded.Type)
	assert.Equal(t, ScalingConfig{Kind: HeU, Gain: math.Sqrt2}, decoded.Config)
	assert.NotNil(t, decoded.InitWFn())
}

func TestUnmarshalUnknownType(t *testing.T) {
	var decoded InitWFn
	err := json.Unmarshal([]byte(`{"Type": "Ones", "Config": {}}`), &decoded)
	assert.Error(t, err)
}

func TestHeUBounds(t *testing.T) {
	init, err := NewHeU(math.Sqrt2)
	require.NoError(t, err)

	fanIn := 4
	weights := init.InitWFn()(tensor.Float64, fanIn, 24).([]float64)
	require.Len(t, weights, fanIn*24)

	limit := math.Sqrt(6 / float64(fanIn))
	for _, w := range weights {
		assert.LessOrEqual(t, math.Abs(w), limit)
	}
}

func TestZeroes(t *testing.T) {
	init, err := NewZeroes()
	require.NoError(t, err)

	weights := init.InitWFn()(tensor.Float64, 2, 3).([]float64)
	assert.Equal(t, make([]float64, 6), weights)
}
