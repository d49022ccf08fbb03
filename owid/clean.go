// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package owid

import "sort"

// CleanStats describes what Clean changed.
type CleanStats struct {
	Dropped int // rows removed for missing date or location
	Filled  int // cells filled from an earlier value
}

// Clean drops rows without a date or location, sorts the table by
// (location, date), and forward-fills missing metric values within each
// location: a missing cell takes the most recent reported value of the
// same metric. Leading gaps stay missing.
func (t *Table) Clean() CleanStats {
	var st CleanStats

	kept := t.Rows[:0]
	for _, r := range t.Rows {
		if r.Date.IsZero() || r.Location == "" {
			st.Dropped++
			continue
		}
		kept = append(kept, r)
	}
	t.Rows = kept

	sort.SliceStable(t.Rows, func(i, j int) bool {
		if t.Rows[i].Location != t.Rows[j].Location {
			return t.Rows[i].Location < t.Rows[j].Location
		}
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})

	var loc string
	carry := make(map[Metric]float64)
	for i := range t.Rows {
		r := &t.Rows[i]
		if r.Location != loc {
			loc = r.Location
			clear(carry)
		}
		for _, m := range t.Columns {
			if v, ok := r.Values[m]; ok {
				carry[m] = v
			} else if v, ok := carry[m]; ok {
				r.Values[m] = v
				st.Filled++
			}
		}
	}
	return st
}
