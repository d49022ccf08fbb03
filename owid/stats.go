// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package owid

import (
	"sort"
	"time"
)

// Series contains one location's values for a metric at points in time.
// Dates and Values are parallel and date-ordered; missing cells are
// omitted entirely.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// SeriesByLocation extracts a per-location series for m. The table must
// already be sorted by (location, date), i.e. Clean must have run.
func (t *Table) SeriesByLocation(m Metric) map[string]Series {
	sm := make(map[string]Series)
	for i := range t.Rows {
		r := &t.Rows[i]
		v, ok := r.Values[m]
		if !ok {
			continue
		}
		s := sm[r.Location]
		s.Dates = append(s.Dates, r.Date)
		s.Values = append(s.Values, v)
		sm[r.Location] = s
	}
	return sm
}

// Snapshot is a location's most recent row plus derived rates.
type Snapshot struct {
	Row
	DeathRate    float64 // total_deaths / total_cases
	HasDeathRate bool
}

// Latest returns each location's row with the maximum date, sorted by
// location name.
func (t *Table) Latest() []Snapshot {
	latest := make(map[string]*Row)
	for i := range t.Rows {
		r := &t.Rows[i]
		if cur, ok := latest[r.Location]; !ok || r.Date.After(cur.Date) {
			latest[r.Location] = r
		}
	}

	locs := make([]string, 0, len(latest))
	for l := range latest {
		locs = append(locs, l)
	}
	sort.Strings(locs)

	snaps := make([]Snapshot, 0, len(locs))
	for _, l := range locs {
		s := Snapshot{Row: *latest[l]}
		cases, cok := s.Value(TotalCases)
		deaths, dok := s.Value(TotalDeaths)
		if cok && dok && cases > 0 {
			s.DeathRate = deaths / cases
			s.HasDeathRate = true
		}
		snaps = append(snaps, s)
	}
	return snaps
}

// TopByCases returns the n snapshots with the highest total_cases,
// highest first. OWID aggregate regions (World, continents) are skipped.
func TopByCases(snaps []Snapshot, n int) []Snapshot {
	var top []Snapshot
	for _, s := range snaps {
		if s.Aggregate() {
			continue
		}
		if _, ok := s.Value(TotalCases); !ok {
			continue
		}
		top = append(top, s)
	}
	sort.SliceStable(top, func(i, j int) bool {
		vi, _ := top[i].Value(TotalCases)
		vj, _ := top[j].Value(TotalCases)
		return vi > vj
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
