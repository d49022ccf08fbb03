// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package chart renders the tracker's line charts as PNGs.
package chart

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width  = 1000
	height = 600
)

// palette matches the gnuplot linetype colors used by earlier scripts
// so charts from the two backends look alike.
var palette = []drawing.Color{
	drawing.ColorFromHex("9400d3"), // dark-violet
	drawing.ColorFromHex("009e73"),
	drawing.ColorFromHex("56b4e9"),
	drawing.ColorFromHex("e69f00"),
	drawing.ColorFromHex("f0e442"),
	drawing.ColorFromHex("0072b2"),
	drawing.ColorFromHex("e51e10"),
	drawing.ColorFromHex("000000"),
}

// ErrNoData is returned when no series has enough points to draw.
var ErrNoData = errors.New("no drawable series")

// lineStyle returns the stroke style for the i-th series.
func lineStyle(i int, dashed bool) chart.Style {
	st := chart.Style{
		StrokeColor: palette[i%len(palette)],
		StrokeWidth: 1.5,
	}
	if dashed {
		st.StrokeDashArray = []float64{5.0, 3.0}
	}
	return st
}

// render finalizes the chart (legend, size) and writes it as a PNG.
func render(graph *chart.Chart, w io.Writer) error {
	if len(graph.Series) == 0 {
		return ErrNoData
	}
	graph.Width = width
	graph.Height = height
	graph.Background = chart.Style{
		Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph.Render(chart.PNG, w)
}

// dateAxis returns the shared X axis for time-series charts.
func dateAxis() chart.XAxis {
	return chart.XAxis{
		Name:           "Date",
		ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
	}
}
