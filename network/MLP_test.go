package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	G "gorgonia.org/gorgonia"
	"gonum.org/v1/gonum/mat"
)

func newTestMLP(t *testing.T, features, outputs, batch int,
	hidden []int) *MLP {
	acts := make([]*Activation, len(hidden))
	for i := range acts {
		acts[i] = ReLU()
	}
	solver := G.NewAdamSolver(G.WithLearnRate(0.01))
	net, err := NewMLP(features, outputs, batch, hidden, acts,
		G.GlorotU(1.0), solver)
	require.NoError(t, err)
	return net
}

func TestPredictKnownWeights(t *testing.T) {
	net := newTestMLP(t, 2, 1, 1, []int{2})

	// W0 is the identity, b0 = [0.5, 0.5], W1 = [2, 3]ᵀ, b1 = 1
	params := [][]float64{{1, 0, 0, 1}, {0.5, 0.5}, {2, 3}, {1}}
	require.NoError(t, net.SetParameters(params))

	// [1, -2] -> [1.5, -1.5] -> ReLU -> [1.5, 0] -> 2 * 1.5 + 1
	pred, err := net.Predict(mat.NewDense(2, 2, []float64{1, -2, 0, 0}))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, pred.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0*0.5+3.0*0.5+1, pred.At(1, 0), 1e-12)
}

func TestPredictRowsIndependent(t *testing.T) {
	net := newTestMLP(t, 4, 2, 8, []int{24, 24})

	states := mat.NewDense(3, 4, []float64{
		0.1, -0.2, 0.03, 0.4,
		-1, 0.5, 0.2, -0.1,
		0, 0, 0, 0,
	})
	batch, err := net.Predict(states)
	require.NoError(t, err)
	r, c := batch.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)

	for i := 0; i < 3; i++ {
		row := mat.NewDense(1, 4, append([]float64(nil), states.RawRowView(i)...))
		single, err := net.Predict(row)
		require.NoError(t, err)
		for j := 0; j < 2; j++ {
			assert.InDelta(t, batch.At(i, j), single.At(0, j), 1e-12)
		}
	}
}

func TestParametersRoundTrip(t *testing.T) {
	a := newTestMLP(t, 4, 2, 1, []int{24, 24})
	b := newTestMLP(t, 4, 2, 1, []int{24, 24})

	require.NoError(t, b.SetParameters(a.Parameters()))
	assert.Equal(t, a.Parameters(), b.Parameters())

	states := mat.NewDense(1, 4, []float64{0.1, 0.2, 0.3, 0.4})
	predA, err := a.Predict(states)
	require.NoError(t, err)
	predB, err := b.Predict(states)
	require.NoError(t, err)
	assert.Equal(t, predA.RawMatrix().Data, predB.RawMatrix().Data)

	// Parameters returns a copy
	params := a.Parameters()
	params[0][0] += 100
	assert.NotEqual(t, params[0][0], a.Parameters()[0][0])
}

func TestSetParametersShapeMismatch(t *testing.T) {
	a := newTestMLP(t, 4, 2, 1, []int{24})
	b := newTestMLP(t, 4, 2, 1, []int{16})

	assert.Error(t, a.SetParameters(b.Parameters()))
	assert.Error(t, a.SetParameters(a.Parameters()[:2]))
}

func TestFitReducesLoss(t *testing.T) {
	net := newTestMLP(t, 2, 2, 4, []int{16})

	states := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	targets := mat.NewDense(4, 2, []float64{0, 1, 1, 0, 1, 0, 2, -1})

	mse := func() float64 {
		pred, err := net.Predict(states)
		require.NoError(t, err)
		var sum float64
		for i := 0; i < 4; i++ {
			for j := 0; j < 2; j++ {
				d := pred.At(i, j) - targets.At(i, j)
				sum += d * d
			}
		}
		return sum / 8
	}

	before := mse()
	require.NoError(t, net.Fit(states, targets, 4, 300))
	after := mse()

	assert.Less(t, after, before)
	assert.GreaterOrEqual(t, net.Loss(), 0.0)
}

func TestFitInvalidBatch(t *testing.T) {
	net := newTestMLP(t, 2, 1, 4, []int{4})

	states := mat.NewDense(4, 2, nil)
	targets := mat.NewDense(4, 1, nil)
	assert.Error(t, net.Fit(states, targets, 2, 1))
	assert.Error(t, net.Fit(mat.NewDense(6, 2, nil), mat.NewDense(6, 1, nil),
		4, 1))
	assert.Error(t, net.Fit(states, mat.NewDense(4, 2, nil), 4, 1))
	assert.NoError(t, net.Fit(mat.NewDense(8, 2, nil), mat.NewDense(8, 1, nil),
		4, 1))
}

func TestNewMLPValidation(t *testing.T) {
	solver := G.NewVanillaSolver()
	_, err := NewMLP(4, 2, 1, []int{24, 24}, []*Activation{ReLU()},
		G.Zeroes(), solver)
	assert.Error(t, err)

	_, err = NewMLP(4, 0, 1, nil, nil, G.Zeroes(), solver)
	assert.Error(t, err)
}

func TestActivationJSON(t *testing.T) {
	acts := []*Activation{ReLU(), TanH(), Identity()}
	data, err := json.Marshal(acts)
	require.NoError(t, err)
	assert.JSONEq(t, `["relu", "tanh", "identity"]`, string(data))

	var decoded []*Activation
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	for i := range acts {
		assert.Equal(t, acts[i].String(), decoded[i].String())
	}

	var bad Activation
	assert.Error(t, json.Unmarshal([]byte(`"softmax"`), &bad))
}
