package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/ddqn/agent/ddqn"
	"github.com/samuelfneumann/ddqn/experiment"
	"github.com/samuelfneumann/ddqn/experiment/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfigs(t *testing.T) (experiment.Config, ddqn.Config) {
	dir := t.TempDir()
	expConf := experiment.DefaultConfig()
	expConf.Episodes = 2
	expConf.ModelDir = filepath.Join(dir, "save_model")
	expConf.GraphDir = filepath.Join(dir, "save_graph")
	expConf.Seed = 7

	agentConf := ddqn.DefaultConfig()
	agentConf.HiddenSizes = []int{8}
	agentConf.Activations = agentConf.Activations[:1]
	agentConf.BatchSize = 4
	agentConf.TrainStart = 8
	agentConf.MemoryCapacity = 32

	return expConf, agentConf
}

func TestTrainSavesOnSolve(t *testing.T) {
	expConf, agentConf := smallConfigs(t)

	// Any episode solves the task
	expConf.SuccessThreshold = -1
	require.NoError(t, Train(expConf, agentConf))

	assert.FileExists(t, expConf.WeightsFile())
	assert.FileExists(t, expConf.AgentConfigFile())
	assert.FileExists(t, expConf.PlotFile())
	assert.FileExists(t, expConf.ChartFile())

	data, err := tracker.LoadData(expConf.DiagnosticsFile())
	require.NoError(t, err)
	assert.Equal(t, 1, data.Len())

	scores, err := Eval(expConf, 2)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	for _, score := range scores {
		assert.GreaterOrEqual(t, score, 1.0)
		assert.LessOrEqual(t, score, 500.0)
	}
}

func TestTrainWithoutSolving(t *testing.T) {
	expConf, agentConf := smallConfigs(t)
	require.NoError(t, Train(expConf, agentConf))

	_, err := os.Stat(expConf.WeightsFile())
	assert.True(t, os.IsNotExist(err))

	data, err := tracker.LoadData(expConf.DiagnosticsFile())
	require.NoError(t, err)
	assert.Equal(t, 2, data.Len())
}

func TestEvalWithoutModel(t *testing.T) {
	expConf, _ := smallConfigs(t)
	_, err := Eval(expConf, 1)
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	root := RootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"train", "eval"}, names)
}
