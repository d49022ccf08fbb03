// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package chart

import (
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// Line is one named series to draw.
type Line struct {
	Name   string
	Dates  []time.Time
	Values []float64
	Dashed bool
}

// Lines draws one line per series against a shared date axis and writes
// the chart as a PNG. Series with fewer than two points are skipped;
// ErrNoData is returned if nothing remains.
func Lines(title, yLabel string, lines []Line, w io.Writer) error {
	graph := chart.Chart{
		Title: title,
		XAxis: dateAxis(),
		YAxis: chart.YAxis{Name: yLabel},
	}
	for i, ln := range lines {
		if len(ln.Dates) < 2 {
			continue
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    ln.Name,
			XValues: ln.Dates,
			YValues: ln.Values,
			Style:   lineStyle(i, ln.Dashed),
		})
	}
	return render(&graph, w)
}
