package expreplay

import (
	"fmt"
	"testing"

	"github.com/samuelfneumann/ddqn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transition(r float64) timestep.Transition {
	return timestep.NewTransition([]float64{r}, 0, r, []float64{r + 1}, false)
}

func TestAddEvictsOldest(t *testing.T) {
	b, err := New(5, 1)
	require.NoError(t, err)

	for r := 1; r <= 7; r++ {
		b.Add(transition(float64(r)))
		assert.LessOrEqual(t, b.Len(), b.Capacity())
	}

	require.Equal(t, 5, b.Len())
	for i := 0; i < b.Len(); i++ {
		assert.Equal(t, float64(i+3), b.At(i).Reward)
	}
}

func TestSampleDistinct(t *testing.T) {
	b, err := New(100, 42)
	require.NoError(t, err)
	for r := 0; r < 50; r++ {
		b.Add(transition(float64(r)))
	}

	for trial := 0; trial < 20; trial++ {
		batch, err := b.Sample(32)
		require.NoError(t, err)
		require.Len(t, batch, 32)

		seen := make(map[float64]bool)
		for _, tr := range batch {
			assert.False(t, seen[tr.Reward], "duplicate transition %v", tr)
			seen[tr.Reward] = true
			assert.GreaterOrEqual(t, tr.Reward, 0.0)
			assert.Less(t, tr.Reward, 50.0)
		}
	}
}

func TestSampleWholeBuffer(t *testing.T) {
	b, err := New(3, 7)
	require.NoError(t, err)
	for r := 0; r < 3; r++ {
		b.Add(transition(float64(r)))
	}

	batch, err := b.Sample(3)
	require.NoError(t, err)
	rewards := make([]float64, 0, 3)
	for _, tr := range batch {
		rewards = append(rewards, tr.Reward)
	}
	assert.ElementsMatch(t, []float64{0, 1, 2}, rewards)
}

func TestSampleInsufficientData(t *testing.T) {
	b, err := New(10, 1)
	require.NoError(t, err)
	b.Add(transition(1))

	_, err = b.Sample(2)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
	assert.True(t, IsInsufficientData(fmt.Errorf("train: %w", err)))
	assert.False(t, IsInsufficientData(fmt.Errorf("other")))
}

func TestNewInvalidCapacity(t *testing.T) {
	_, err := New(0, 1)
	assert.Error(t, err)
}
