// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derat/covidtracker/owid"
)

func init() {
	color.NoColor = true // keep escape codes out of assertions
}

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}

func testTable() *owid.Table {
	row := func(iso, loc string, date time.Time, vals map[owid.Metric]float64) owid.Row {
		return owid.Row{ISOCode: iso, Location: loc, Date: date, Values: vals}
	}
	return &owid.Table{
		Columns: []owid.Metric{owid.TotalCases, owid.TotalDeaths},
		Rows: []owid.Row{
			row("USA", "United States", day(2), map[owid.Metric]float64{
				owid.TotalCases: 1234567, owid.TotalDeaths: 24691,
			}),
			row("IND", "India", day(2), map[owid.Metric]float64{
				owid.TotalCases: 2000000, owid.TotalDeaths: 20000,
			}),
			row("OWID_WRL", "World", day(2), map[owid.Metric]float64{
				owid.TotalCases: 90000000, owid.TotalDeaths: 2000000,
			}),
		},
	}
}

func TestBuild(t *testing.T) {
	s := Build(testTable(), 5)
	require.Len(t, s.Top, 2) // World is an aggregate
	assert.Equal(t, "India", s.Top[0].Location)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, day(2), s.MaxDate)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Build(testTable(), 5).Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "United States")
	assert.Contains(t, out, "1,234,567")
	// 24691/1234567 ~ 2.00%; the US has the worse rate.
	assert.Contains(t, out, "2.00%")
	assert.Contains(t, out, "Highest death rate")
	assert.Contains(t, out, "3 rows from 2021-01-02 to 2021-01-02")
}

func TestFormatCount(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	} {
		assert.Equal(t, tc.want, formatCount(tc.v), "formatCount(%v)", tc.v)
	}
}
