package checkpointer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalCheckpointSavesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "save_model")
	calls := 0
	write := SaveFunc(func(filename string) error {
		calls++
		return os.WriteFile(filename, []byte("weights"), 0644)
	})

	c := NewFinal()
	c.Register(write, filepath.Join(dir, "model.bin"))
	assert.False(t, c.Done())

	require.NoError(t, c.Checkpoint())
	require.NoError(t, c.Checkpoint())
	assert.True(t, c.Done())
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(filepath.Join(dir, "model.bin"))
	require.NoError(t, err)
	assert.Equal(t, "weights", string(data))
}

func TestFinalCheckpointError(t *testing.T) {
	saveErr := errors.New("disk full")
	c := NewFinal()
	c.Register(SaveFunc(func(string) error { return saveErr }),
		filepath.Join(t.TempDir(), "model.bin"))

	err := c.Checkpoint()
	require.Error(t, err)
	assert.True(t, errors.Is(err, saveErr))
	assert.False(t, c.Done())
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, 4, "frames/frame", ".png")
	assert.Equal(t, "frames/frame0000.png", next())
	assert.Equal(t, "frames/frame0001.png", next())

	next = FilenameEnumerator(9, 1, "f", ".png")
	assert.Equal(t, "f9.png", next())
	assert.Equal(t, "f10.png", next())
}
