// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package report prints the textual summary of the analyzed dataset.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/derat/covidtracker/owid"
)

// Summary describes what gets printed: the top countries by total cases
// plus a few dataset-level facts.
type Summary struct {
	Top     []owid.Snapshot
	Rows    int       // cleaned dataset size
	MinDate time.Time // dataset span
	MaxDate time.Time
}

// Build assembles a Summary from the cleaned table, ranking the top n
// countries by latest total cases.
func Build(t *owid.Table, n int) Summary {
	return Summary{
		Top:     owid.TopByCases(t.Latest(), n),
		Rows:    len(t.Rows),
		MinDate: t.MinDate(),
		MaxDate: t.MaxDate(),
	}
}

// Print writes the summary table and insight lines to w.
func (s Summary) Print(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintf(w,
		"\nTop %d countries by total cases:\n", len(s.Top))

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Country", "Total Cases", "Total Deaths", "Death Rate"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	for _, snap := range s.Top {
		tw.Append([]string{
			snap.Location,
			countCell(&snap, owid.TotalCases),
			countCell(&snap, owid.TotalDeaths),
			rateCell(&snap),
		})
	}
	tw.Render()

	fmt.Fprintf(w, "\nDataset: %d rows from %s to %s\n",
		s.Rows, s.MinDate.Format("2006-01-02"), s.MaxDate.Format("2006-01-02"))
	if worst, ok := s.worstDeathRate(); ok {
		fmt.Fprintf(w, "Highest death rate among the top %d: %s (%.2f%%)\n",
			len(s.Top), worst.Location, worst.DeathRate*100)
	}
}

// worstDeathRate returns the top-ranked snapshot with the highest death
// rate, if any snapshot has one.
func (s Summary) worstDeathRate() (owid.Snapshot, bool) {
	var worst owid.Snapshot
	var found bool
	for _, snap := range s.Top {
		if snap.HasDeathRate && (!found || snap.DeathRate > worst.DeathRate) {
			worst = snap
			found = true
		}
	}
	return worst, found
}

func countCell(s *owid.Snapshot, m owid.Metric) string {
	v, ok := s.Value(m)
	if !ok {
		return "-"
	}
	return formatCount(v)
}

func rateCell(s *owid.Snapshot) string {
	if !s.HasDeathRate {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", s.DeathRate*100)
}

// formatCount renders a count with thousands separators, e.g. "1,234,567".
func formatCount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
