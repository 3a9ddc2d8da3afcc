// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressBar implements a live progress bar. The bar is redrawn in
// place by a uilive.Writer, which flushes from its own goroutine every
// updateEvery, so callers only need to call Increment as work is done.
//
// Increment, SetLabel, and Close must be called from a single
// goroutine.
type ProgressBar struct {
	// width determines the number of characters wide that the progress
	// bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%
	maxProgress     int
	currentProgress int

	label     string
	startTime time.Time
	writer    *uilive.Writer
	started   bool
	closed    bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls. The bar
// is drawn to out every updateEvery.
func NewProgressBar(out io.Writer, width, max int,
	updateEvery time.Duration) *ProgressBar {
	writer := uilive.New()
	writer.Out = out
	writer.RefreshInterval = updateEvery

	return &ProgressBar{
		width:       width,
		maxProgress: max,
		writer:      writer,
	}
}

// Display starts drawing the progress bar. It should only be called
// once.
func (p *ProgressBar) Display() {
	if p.started {
		panic("display: progress bar already displayed")
	}
	p.started = true
	p.startTime = time.Now()
	p.writer.Start()
	p.render()
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
	p.render()
}

// SetLabel sets text displayed after the progress bar
func (p *ProgressBar) SetLabel(label string) {
	p.label = label
	p.render()
}

// Close draws the final state of the progress bar and stops the
// writer. This function also cleans up any resources the progress
// bar is using.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	p.closed = true
	if p.started {
		p.render()
		p.writer.Stop()
	}
}

// render queues the current bar to be written on the next flush
func (p *ProgressBar) render() {
	if !p.started {
		return
	}
	fmt.Fprintln(p.writer, p.String())
}

// String returns the progress bar as it is drawn to the screen
func (p *ProgressBar) String() string {
	var bar strings.Builder
	bar.WriteString("|")

	fraction := 0.0
	if p.maxProgress > 0 {
		fraction = float64(p.currentProgress) / float64(p.maxProgress)
	}
	filled := int(fraction * float64(p.width))
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))

	elapsed := time.Duration(0)
	if p.started {
		elapsed = time.Since(p.startTime).Truncate(time.Second)
	}
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", fraction*100, elapsed)

	if p.label != "" {
		bar.WriteString(" " + p.label)
	}
	return bar.String()
}
