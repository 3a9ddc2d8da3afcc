// Package checkpointer implements Checkpointers, which save the state
// of an experiment to disk
package checkpointer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Serializable is an object that can be saved to a file
type Serializable interface {
	Save(filename string) error
}

// SaveFunc adapts a function to the Serializable interface
type SaveFunc func(filename string) error

// Save calls f(filename)
func (f SaveFunc) Save(filename string) error {
	return f(filename)
}

// Checkpointer checkpoints/saves Serializable objects
type Checkpointer interface {
	Checkpoint() error
}

type entry struct {
	obj      Serializable
	filename string
}

// Final is a Checkpointer which saves each of its registered objects
// once, when Checkpoint is called. It is meant to be triggered at the
// end of an experiment.
type Final struct {
	entries []entry
	done    bool
}

// NewFinal returns a new Final Checkpointer
func NewFinal() *Final {
	return &Final{}
}

// Register adds obj to the objects saved at the checkpoint. The object
// will be saved to filename, creating its directory if needed.
func (f *Final) Register(obj Serializable, filename string) {
	f.entries = append(f.entries, entry{obj, filename})
}

// Checkpoint saves all registered objects. Calling Checkpoint more
// than once is a no-op.
func (f *Final) Checkpoint() error {
	if f.done {
		return nil
	}

	for _, e := range f.entries {
		if err := os.MkdirAll(filepath.Dir(e.filename), 0755); err != nil {
			return fmt.Errorf("checkpoint: could not create directory: %w",
				err)
		}
		if err := e.obj.Save(e.filename); err != nil {
			return fmt.Errorf("checkpoint: could not save %v: %w",
				e.filename, err)
		}
	}
	f.done = true
	return nil
}

// Done returns whether the checkpoint has been taken
func (f *Final) Done() bool {
	return f.done
}
