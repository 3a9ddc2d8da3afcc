package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/ddqn/experiment/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episodes() []tracker.Episode {
	return []tracker.Episode{
		{Number: 0, Score: 14, QMaxAvg: 0.2, ActualReturn: -80},
		{Number: 1, Score: 25, QMaxAvg: 1.1, ActualReturn: -60},
		{Number: 2, Score: 500, QMaxAvg: 9.4, ActualReturn: 250},
	}
}

func TestPNGOverwrite(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cartpole_ddqn.png")
	p := NewPNG(filename)

	for _, e := range episodes() {
		p.Track(e)
		require.NoError(t, p.Save())
	}

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, 3, p.Len())
}

func TestPNGBadPath(t *testing.T) {
	p := NewPNG(filepath.Join(t.TempDir(), "missing", "plot.png"))
	p.Track(episodes()[0])
	assert.Error(t, p.Save())
}

func TestHTML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cartpole_ddqn.html")
	h := NewHTML(filename)
	for _, e := range episodes() {
		h.Track(e)
	}
	require.NoError(t, h.Save())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "discounted return"))
}
