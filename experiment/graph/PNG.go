// Package graph implements Trackers which plot the per-episode
// diagnostics of an experiment
package graph

import (
	"fmt"
	"image/color"

	"github.com/samuelfneumann/ddqn/experiment/tracker"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	blue = color.RGBA{B: 255, A: 255}
	red  = color.RGBA{R: 255, A: 255}
)

// PNG plots the mean max-Q estimate (blue) against the mean discounted
// return (red) of each episode. Each call to Save overwrites the image.
type PNG struct {
	tracker.Series
	filename      string
	width, height vg.Length
}

// NewPNG returns a new PNG Tracker which saves to filename
func NewPNG(filename string) *PNG {
	return &PNG{
		filename: filename,
		width:    8 * vg.Inch,
		height:   5 * vg.Inch,
	}
}

// Track records the diagnostics of a finished episode
func (p *PNG) Track(e tracker.Episode) {
	p.Append(e)
}

// Save draws the tracked diagnostics and saves the plot
func (p *PNG) Save() error {
	pl := plot.New()
	pl.Title.Text = "Q-value estimate vs. discounted return"
	pl.X.Label.Text = "episodes"
	pl.Y.Label.Text = "value"
	pl.Legend.Top = true

	qMax, err := plotter.NewLine(p.xys(p.QMaxAvgs))
	if err != nil {
		return fmt.Errorf("save: could not create max-Q line: %w", err)
	}
	qMax.Color = blue

	actual, err := plotter.NewLine(p.xys(p.ActualReturns))
	if err != nil {
		return fmt.Errorf("save: could not create return line: %w", err)
	}
	actual.Color = red

	pl.Add(plotter.NewGrid(), qMax, actual)
	pl.Legend.Add("max Q avg", qMax)
	pl.Legend.Add("discounted return", actual)

	if err := pl.Save(p.width, p.height, p.filename); err != nil {
		return fmt.Errorf("save: could not save plot: %w", err)
	}
	return nil
}

// xys pairs each value with its episode number
func (p *PNG) xys(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i].X = float64(p.Episodes[i])
		pts[i].Y = values[i]
	}
	return pts
}
