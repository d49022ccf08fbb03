// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/derat/covidtracker/owid"
)

func init() {
	color.NoColor = true
}

func testApp() *app {
	day := func(d int) time.Time {
		return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
	}
	tab := &owid.Table{
		Columns: []owid.Metric{owid.TotalCases, owid.TotalDeaths},
		Rows: []owid.Row{
			{ISOCode: "USA", Location: "United States", Date: day(1),
				Values: map[owid.Metric]float64{owid.TotalCases: 100, owid.TotalDeaths: 5}},
			{ISOCode: "USA", Location: "United States", Date: day(2),
				Values: map[owid.Metric]float64{owid.TotalCases: 150, owid.TotalDeaths: 6}},
		},
	}
	return &app{
		cfg:      config{Top: 5},
		log:      zap.NewNop(),
		data:     tab,
		filtered: tab,
	}
}

func TestHandleChoice_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testApp().handleChoice("6", &buf))
	assert.Contains(t, buf.String(), "United States")
}

func TestHandleChoice_Exit(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, testApp().handleChoice("7", &buf), errExit)
}

func TestHandleChoice_Invalid(t *testing.T) {
	var buf bytes.Buffer
	err := testApp().handleChoice("99", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99")
}

func TestMenuLoop(t *testing.T) {
	// An invalid choice reports an error and re-prompts; EOF exits.
	var buf bytes.Buffer
	a := testApp()
	require.NoError(t, a.menuLoop(strings.NewReader("nope\n7\n"), &buf))
	out := buf.String()
	assert.Contains(t, out, "invalid choice")
	assert.Contains(t, out, "Exiting navigation menu.")
}

func TestMenuLoop_EOF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testApp().menuLoop(strings.NewReader(""), &buf))
	assert.Contains(t, buf.String(), "Graph Navigation Menu")
}

func TestGnuplotData(t *testing.T) {
	header, rows := testApp().gnuplotData([]owid.Metric{owid.TotalCases})
	assert.Equal(t, []string{"Date", "United States"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2021-01-01", "100"}, rows[0])
	assert.Equal(t, []string{"2021-01-02", "150"}, rows[1])
}
