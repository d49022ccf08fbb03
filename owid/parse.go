// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package owid

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// requiredColumns must exist in the CSV; metric columns are optional.
var requiredColumns = []string{"iso_code", "location", "date"}

// ParseCSV reads the OWID CSV from r into a Table. The file is ingested
// through a dataframe so only the analysis columns are retained; rows
// with unparseable dates are skipped and counted in the log.
func ParseCSV(r io.Reader, log *zap.Logger) (*Table, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Every column is ingested as a string: numeric parsing happens
	// below so that empty cells can be tracked as absent values.
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String))
	if df.Err != nil {
		return nil, fmt.Errorf("failed reading CSV: %w", df.Err)
	}

	// Subset to the columns the analysis cares about, tolerating
	// metric columns that are missing from the source.
	have := make(map[string]struct{}, len(df.Names()))
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	for _, c := range requiredColumns {
		if _, ok := have[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}
	keep := append([]string{}, requiredColumns...)
	var cols []Metric
	for _, m := range metrics {
		if _, ok := have[string(m)]; ok {
			keep = append(keep, string(m))
			cols = append(cols, m)
		}
	}
	df = df.Select(keep)
	if df.Err != nil {
		return nil, fmt.Errorf("failed selecting columns: %w", df.Err)
	}

	recs := df.Records() // first record is the header
	idx := make(map[string]int, len(recs[0]))
	for i, name := range recs[0] {
		idx[name] = i
	}

	t := &Table{Columns: cols}
	var skipped int
	for _, rec := range recs[1:] {
		date, err := parseDate(rec[idx["date"]])
		if err != nil {
			skipped++
			continue
		}
		row := Row{
			ISOCode:  rec[idx["iso_code"]],
			Location: rec[idx["location"]],
			Date:     date,
			Values:   make(map[Metric]float64),
		}
		for _, m := range cols {
			if v, ok := parseCell(rec[idx[string(m)]]); ok {
				row.Values[m] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if skipped > 0 {
		log.Warn("Skipped rows with bad dates", zap.Int("rows", skipped))
	}
	log.Info("Parsed dataset",
		zap.Int("rows", len(t.Rows)), zap.Int("metrics", len(cols)))
	return t, nil
}

// parseDate accepts the ISO layout OWID uses plus the slash layout that
// some older exports carried.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse("01/02/2006", s)
}

// parseCell converts a dataframe cell to a float. Empty cells come back
// from the dataframe as "" or "NaN" depending on the column type.
func parseCell(s string) (float64, bool) {
	if s == "" || s == "NaN" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
