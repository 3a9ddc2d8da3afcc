// Package expreplay implements a uniform experience replay buffer
package expreplay

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/samuelfneumann/ddqn/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Buffer is a bounded FIFO store of transitions. When the buffer is
// full, adding a transition evicts the oldest one. Transitions are
// sampled uniformly at random without replacement.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data     *deque.Deque[timestep.Transition]
	capacity int
	source   rand.Source
}

// New returns a new Buffer holding at most capacity transitions
func New(capacity int, seed uint64) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("new: capacity must be > 0")
	}

	return &Buffer{
		data:     deque.New[timestep.Transition](capacity),
		capacity: capacity,
		source:   rand.NewSource(seed),
	}, nil
}

// Add adds a transition to the buffer, evicting the oldest transition
// if the buffer is at capacity. The buffer takes ownership of t.
func (b *Buffer) Add(t timestep.Transition) {
	if b.data.Len() == b.capacity {
		b.data.PopFront()
	}
	b.data.PushBack(t)
}

// Sample returns n distinct transitions drawn uniformly at random from
// the buffer. The order of the returned transitions is unspecified. If
// the buffer holds fewer than n transitions, an *InsufficientDataError
// is returned.
func (b *Buffer) Sample(n int) ([]timestep.Transition, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample: cannot sample %v transitions", n)
	}
	if b.data.Len() < n {
		return nil, &InsufficientDataError{
			Op:        "sample",
			Len:       b.data.Len(),
			Requested: n,
		}
	}

	indices := make([]int, n)
	sampleuv.WithoutReplacement(indices, b.data.Len(), b.source)

	batch := make([]timestep.Transition, n)
	for i, index := range indices {
		batch[i] = b.data.At(index)
	}
	return batch, nil
}

// Len returns the number of transitions in the buffer
func (b *Buffer) Len() int {
	return b.data.Len()
}

// Capacity returns the maximum number of transitions the buffer holds
func (b *Buffer) Capacity() int {
	return b.capacity
}

// At returns the transition at index i, where index 0 is the oldest
// transition in the buffer
func (b *Buffer) At(i int) timestep.Transition {
	return b.data.At(i)
}
