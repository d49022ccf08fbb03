// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package chart

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// DualAxis draws primary series (solid) against the left Y axis and
// secondary series (dashed) against the right Y axis, then writes the
// chart as a PNG. Series with fewer than two points are skipped.
func DualAxis(title, yLabel, y2Label string, primary, secondary []Line, w io.Writer) error {
	graph := chart.Chart{
		Title:          title,
		XAxis:          dateAxis(),
		YAxis:          chart.YAxis{Name: yLabel},
		YAxisSecondary: chart.YAxis{Name: y2Label},
	}
	for i, ln := range primary {
		if len(ln.Dates) < 2 {
			continue
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    ln.Name + " " + yLabel,
			XValues: ln.Dates,
			YValues: ln.Values,
			Style:   lineStyle(i, false),
		})
	}
	var drewSecondary bool
	for i, ln := range secondary {
		if len(ln.Dates) < 2 {
			continue
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    ln.Name + " " + y2Label,
			XValues: ln.Dates,
			YValues: ln.Values,
			YAxis:   chart.YAxisSecondary,
			Style:   lineStyle(i, true),
		})
		drewSecondary = true
	}
	// go-chart refuses to lay out a secondary axis with no series on it.
	if !drewSecondary {
		graph.YAxisSecondary = chart.YAxis{}
	}
	return render(&graph, w)
}
