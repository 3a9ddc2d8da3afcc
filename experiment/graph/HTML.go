package graph

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/ddqn/experiment/tracker"
)

// HTML renders an interactive line chart of the score, mean max-Q
// estimate, and mean discounted return of each episode
type HTML struct {
	tracker.Series
	filename string
}

// NewHTML returns a new HTML Tracker which saves to filename
func NewHTML(filename string) *HTML {
	return &HTML{filename: filename}
}

// Track records the diagnostics of a finished episode
func (h *HTML) Track(e tracker.Episode) {
	h.Append(e)
}

// Save renders the chart and writes it to disk
func (h *HTML) Save() error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "CartPole DDQN"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episodes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value"}),
	)

	episodes := make([]string, h.Len())
	for i, ep := range h.Episodes {
		episodes[i] = strconv.Itoa(ep)
	}

	line.SetXAxis(episodes).
		AddSeries("score", lineData(h.Scores)).
		AddSeries("max Q avg", lineData(h.QMaxAvgs),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "blue"})).
		AddSeries("discounted return", lineData(h.ActualReturns),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "red"}))

	file, err := os.Create(h.filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("save: could not render chart: %w", err)
	}
	return file.Close()
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
