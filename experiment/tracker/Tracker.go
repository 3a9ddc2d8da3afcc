// Package tracker implements Trackers, which record and save the
// per-episode diagnostics of an experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Episode summarizes a finished episode
type Episode struct {
	Number int

	// Score is the corrected episode score
	Score float64

	// QMaxAvg is the mean over the episode's steps of the largest
	// action value predicted in each state
	QMaxAvg float64

	// ActualReturn is the mean over the episode's steps of the
	// discounted return of the shaped rewards from that step
	ActualReturn float64

	Steps       int
	MemoryLen   int
	Epsilon     float64
	GlobalSteps int
}

// Tracker keeps track of experiment data and saves it. Save may be
// called after every episode and overwrites previously saved data.
type Tracker interface {
	Track(e Episode)
	Save() error
}

// Series holds per-episode diagnostics in episode order
type Series struct {
	Episodes      []int
	Scores        []float64
	QMaxAvgs      []float64
	ActualReturns []float64
}

// Append adds the diagnostics of an episode to the series
func (s *Series) Append(e Episode) {
	s.Episodes = append(s.Episodes, e.Number)
	s.Scores = append(s.Scores, e.Score)
	s.QMaxAvgs = append(s.QMaxAvgs, e.QMaxAvg)
	s.ActualReturns = append(s.ActualReturns, e.ActualReturn)
}

// Len returns the number of episodes in the series
func (s *Series) Len() int {
	return len(s.Episodes)
}

// LoadData loads and returns the data saved by a Diagnostics Tracker
func LoadData(filename string) (Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Series{}, fmt.Errorf("loadData: could not open data file: %w",
			err)
	}
	defer file.Close()

	var data Series
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&data); err != nil {
		return Series{}, fmt.Errorf("loadData: could not decode data: %w",
			err)
	}
	return data, nil
}
