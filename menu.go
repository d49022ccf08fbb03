// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/derat/covidtracker/chart"
	"github.com/derat/covidtracker/gnuplot"
	"github.com/derat/covidtracker/owid"
	"github.com/derat/covidtracker/report"
)

var errExit = errors.New("exit requested")

// menuLoop reads numbered choices from r until exit or EOF, re-rendering
// the chosen chart each time.
func (a *app) menuLoop(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		printMenu(w)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())
		if err := a.handleChoice(choice, w); err != nil {
			if errors.Is(err, errExit) {
				color.New(color.FgGreen).Fprintln(w, "Exiting navigation menu.")
				return nil
			}
			color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
		}
	}
}

func printMenu(w io.Writer) {
	color.New(color.FgCyan).Fprintln(w, "\nGraph Navigation Menu:")
	fmt.Fprintln(w, "1. Total Cases Over Time")
	fmt.Fprintln(w, "2. Total Deaths Over Time")
	fmt.Fprintln(w, "3. New Cases vs Total Vaccinations")
	fmt.Fprintln(w, "4. New Cases vs New Deaths")
	fmt.Fprintln(w, "5. World Map of Total Cases")
	fmt.Fprintln(w, "6. Summary Table")
	fmt.Fprintln(w, "7. Exit")
	fmt.Fprint(w, "\nEnter your choice (1-7): ")
}

func (a *app) handleChoice(choice string, w io.Writer) error {
	switch choice {
	case "1":
		return a.redraw(w, a.renderTotalCases, func() error {
			return a.displayLines("Total Cases Over Time", owid.TotalCases)
		})
	case "2":
		return a.redraw(w, a.renderTotalDeaths, func() error {
			return a.displayLines("Total Deaths Over Time", owid.TotalDeaths)
		})
	case "3":
		err := a.redraw(w, a.renderVaccinations, nil)
		if errors.Is(err, errNoVaccData) || errors.Is(err, chart.ErrNoData) {
			color.New(color.FgYellow).Fprintln(w, "Vaccination data is unavailable for this selection.")
			return nil
		}
		return err
	case "4":
		return a.redraw(w, a.renderCasesVsDeaths, func() error {
			return a.displayLines("New Cases vs New Deaths Over Time", owid.NewCases, owid.NewDeaths)
		})
	case "5":
		return a.redraw(w, a.renderMap, nil)
	case "6":
		report.Build(a.data, a.cfg.Top).Print(w)
		return nil
	case "7":
		return errExit
	default:
		return fmt.Errorf("invalid choice %q; enter 1-7", choice)
	}
}

// redraw re-renders a chart's PNG and, when enabled and available, opens
// an interactive gnuplot window for it.
func (a *app) redraw(w io.Writer, render func() (string, error), display func() error) error {
	p, err := render()
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(w, "Wrote %v\n", p)

	if display == nil || !a.display {
		return nil
	}
	if !gnuplot.Available() {
		a.log.Debug("gnuplot not installed; skipping interactive display")
		return nil
	}
	return display()
}

// linesTemplate is the gnuplot script for the interactive line charts.
const linesTemplate = `
set title '{{.Title}}'

set xlabel 'Date'
set xdata time
set timefmt '%Y-%m-%d'
set format x '%b %y'

set ylabel '{{.YLabel}}'
set yrange [0:*]

set datafile separator "\t"
set key autotitle columnheader top left

plot for [i=2:{{.NumCols}}] '{{.DataPath}}' using 1:i with lines
`

// displayLines opens a persistent gnuplot window plotting the filtered
// table's per-country series for the supplied metrics.
func (a *app) displayLines(title string, ms ...owid.Metric) error {
	header, rows := a.gnuplotData(ms)
	if len(header) < 2 {
		return chart.ErrNoData
	}

	dp, err := gnuplot.WriteData(header, rows)
	if err != nil {
		return fmt.Errorf("failed writing data file: %w", err)
	}
	defer os.Remove(dp)

	return gnuplot.ExecTemplate(linesTemplate, struct {
		Title    string
		YLabel   string
		DataPath string
		NumCols  int
	}{title, ms[0].Label(), dp, len(header)}, true)
}

// gnuplotData flattens the filtered table into one dated row per line
// with a column per (country, metric) pair. Missing values become "?",
// which gnuplot skips.
func (a *app) gnuplotData(ms []owid.Metric) (header []string, rows [][]string) {
	type col struct {
		name   string
		series owid.Series
	}
	var cols []col
	for _, m := range ms {
		sm := a.filtered.SeriesByLocation(m)
		names := make([]string, 0, len(sm))
		for n := range sm {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			label := n
			if len(ms) > 1 {
				label += " " + m.Label()
			}
			cols = append(cols, col{label, sm[n]})
		}
	}

	dates := make(map[string]struct{})
	for _, c := range cols {
		for _, d := range c.series.Dates {
			dates[d.Format(dateLayout)] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	header = append(header, "Date")
	for _, c := range cols {
		header = append(header, c.name)
	}

	lookup := make([]map[string]float64, len(cols))
	for i, c := range cols {
		lookup[i] = make(map[string]float64, len(c.series.Dates))
		for j, d := range c.series.Dates {
			lookup[i][d.Format(dateLayout)] = c.series.Values[j]
		}
	}
	for _, d := range sorted {
		row := make([]string, 0, len(cols)+1)
		row = append(row, d)
		for i := range cols {
			if v, ok := lookup[i][d]; ok {
				row = append(row, fmt.Sprintf("%v", v))
			} else {
				row = append(row, "?")
			}
		}
		rows = append(rows, row)
	}
	return header, rows
}
