// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package owid loads and analyzes the Our World in Data COVID-19 dataset.
package owid

import (
	"sort"
	"strings"
	"time"
)

// DataURL is the canonical location of the OWID dataset.
const DataURL = "https://covid.ourworldindata.org/data/owid-covid-data.csv"

// LocalPath is the default on-disk cache for the downloaded dataset.
const LocalPath = "owid-covid-data.csv"

// Metric identifies a numeric column in the dataset.
type Metric string

// Metrics used by the analysis, named as in the OWID CSV header.
const (
	TotalCases           Metric = "total_cases"
	NewCases             Metric = "new_cases"
	TotalDeaths          Metric = "total_deaths"
	NewDeaths            Metric = "new_deaths"
	TotalVaccinations    Metric = "total_vaccinations"
	VaccinatedPerHundred Metric = "people_vaccinated_per_hundred"
)

// metrics lists all metric columns in CSV order.
var metrics = []Metric{
	TotalCases, NewCases,
	TotalDeaths, NewDeaths,
	TotalVaccinations, VaccinatedPerHundred,
}

// Label returns a human-readable name, e.g. "Total Cases" for total_cases.
func (m Metric) Label() string {
	words := strings.Split(string(m), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// aggregatePrefix marks OWID's synthetic rows (World, continents, income groups).
const aggregatePrefix = "OWID_"

// Row holds one location's data for one day. Metrics without a reported
// value are absent from the map.
type Row struct {
	ISOCode  string // 3-letter ISO code, or OWID_* for aggregates
	Location string
	Date     time.Time
	Values   map[Metric]float64
}

// Value returns the named metric and whether it is present.
func (r *Row) Value(m Metric) (float64, bool) {
	v, ok := r.Values[m]
	return v, ok
}

// Aggregate reports whether the row describes a synthetic region
// (e.g. "World" or a continent) rather than a country.
func (r *Row) Aggregate() bool {
	return strings.HasPrefix(r.ISOCode, aggregatePrefix)
}

// Table is an ordered collection of dataset rows.
type Table struct {
	Rows    []Row
	Columns []Metric // metric columns present in the source
}

// HasMetric reports whether m was present in the source columns.
func (t *Table) HasMetric(m Metric) bool {
	for _, c := range t.Columns {
		if c == m {
			return true
		}
	}
	return false
}

// Locations returns the sorted set of locations in the table.
func (t *Table) Locations() []string {
	seen := make(map[string]struct{})
	var locs []string
	for i := range t.Rows {
		if _, ok := seen[t.Rows[i].Location]; !ok {
			seen[t.Rows[i].Location] = struct{}{}
			locs = append(locs, t.Rows[i].Location)
		}
	}
	sort.Strings(locs)
	return locs
}

// MaxDate returns the latest date in the table, or the zero time if empty.
func (t *Table) MaxDate() time.Time {
	var max time.Time
	for i := range t.Rows {
		if t.Rows[i].Date.After(max) {
			max = t.Rows[i].Date
		}
	}
	return max
}

// MinDate returns the earliest date in the table, or the zero time if empty.
func (t *Table) MinDate() time.Time {
	var min time.Time
	for i := range t.Rows {
		if min.IsZero() || t.Rows[i].Date.Before(min) {
			min = t.Rows[i].Date
		}
	}
	return min
}
