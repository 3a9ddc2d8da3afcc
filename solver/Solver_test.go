package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	adam, err := NewDefaultAdam(0.001, 1)
	require.NoError(t, err)

	data, err := json.Marshal(adam)
	require.NoError(t, err)

	var decoded Solver
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Adam, decoded.Type)
	assert.Equal(t, adam.Config, decoded.Config)
	assert.NotNil(t, decoded.Solver)
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	var decoded Solver

	err := json.Unmarshal([]byte(`{"Type": "Nesterov", "Config": {}}`),
		&decoded)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"Type": "Vanilla", "Config": `+
		`{"StepSize": -1, "Batch": 1}}`), &decoded)
	assert.Error(t, err)
}

func TestConstructors(t *testing.T) {
	_, err := NewVanilla(0.1, 1, 5)
	assert.NoError(t, err)

	_, err = NewDefaultRMSProp(0.01, 1)
	assert.NoError(t, err)

	_, err = NewAdam(0.01, 1e-8, 1.5, 0.999, 1)
	assert.Error(t, err)
}
