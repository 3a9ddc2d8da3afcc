package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 0.01, Clip(0.005, 0.01, 1))
	assert.Equal(t, 0.5, Clip(0.5, 0.01, 1))
	assert.Equal(t, 1.0, Clip(3, 0.01, 1))
}

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{3, 1, 3, 2, 3})
	assert.Equal(t, 3.0, max)
	assert.Equal(t, []int{0, 2, 4}, indices)
}

func TestArgmaxLowestIndex(t *testing.T) {
	i, v := Argmax([]float64{-1, 2, 2})
	assert.Equal(t, 1, i)
	assert.Equal(t, 2.0, v)

	i, _ = Argmax([]float64{5})
	assert.Equal(t, 0, i)
}
