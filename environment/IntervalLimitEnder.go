package environment

import (
	"github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever a single feature in a feature vector leaves some interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   timestep.EndType
}

// NewIntervalLimit creates and returns a new interval limit. The
// endType argument determines what the episode end should be
// considered as.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType timestep.EndType) *IntervalLimit {
	if len(limits) != len(obsIndices) {
		panic("limits should have same length as observation indices")
	}

	return &IntervalLimit{limits, obsIndices, endType}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type.
func (i *IntervalLimit) End(t *timestep.TimeStep) bool {
	if i.Outside(t.Observation.RawVector().Data) {
		t.StepType = timestep.Last
		t.SetEnd(i.endType)
		return true
	}
	return false
}

// Outside returns whether any tracked feature of obs lies outside its
// interval
func (i *IntervalLimit) Outside(obs []float64) bool {
	for index, featureIndex := range i.indices {
		interval := i.intervals[index]
		if obs[featureIndex] > interval.Max || obs[featureIndex] < interval.Min {
			return true
		}
	}
	return false
}
