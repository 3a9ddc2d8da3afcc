package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "diagnostics.bin")
	d := NewDiagnostics(filename)

	d.Track(Episode{Number: 0, Score: 12, QMaxAvg: 0.5, ActualReturn: 3})
	require.NoError(t, d.Save())
	d.Track(Episode{Number: 1, Score: 30, QMaxAvg: 1.5, ActualReturn: 9})
	require.NoError(t, d.Save())

	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, 2, data.Len())
	assert.Equal(t, []int{0, 1}, data.Episodes)
	assert.Equal(t, []float64{12, 30}, data.Scores)
	assert.Equal(t, []float64{0.5, 1.5}, data.QMaxAvgs)
	assert.Equal(t, []float64{3, 9}, data.ActualReturns)
}

func TestLoadDataMissing(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
