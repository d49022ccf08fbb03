// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/derat/covidtracker/chart"
	"github.com/derat/covidtracker/download"
	"github.com/derat/covidtracker/filewriter"
	"github.com/derat/covidtracker/geo"
	"github.com/derat/covidtracker/owid"
	"github.com/derat/covidtracker/report"
)

// errNoVaccData is reported when the vaccination chart can't be drawn
// because the source lacks the column (or the window has no values).
var errNoVaccData = errors.New("no vaccination data available")

// app ties the loaded dataset to the rendering and menu code.
type app struct {
	cfg     config
	log     *zap.Logger
	display bool // open gnuplot windows from the menu

	data     *owid.Table // cleaned full dataset
	filtered *owid.Table // country/date window
}

// run executes the whole pipeline: load, clean, filter, render all
// charts, print the summary, then (unless noMenu) loop on the menu.
func (a *app) run(stdin io.Reader, stdout io.Writer, noMenu bool) error {
	if err := a.load(); err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("failed creating output dir: %w", err)
	}

	for _, c := range []struct {
		name   string
		render func() (string, error)
	}{
		{"total cases", a.renderTotalCases},
		{"total deaths", a.renderTotalDeaths},
		{"vaccinations", a.renderVaccinations},
		{"cases vs deaths", a.renderCasesVsDeaths},
		{"world map", a.renderMap},
	} {
		p, err := c.render()
		if errors.Is(err, errNoVaccData) || errors.Is(err, chart.ErrNoData) {
			a.log.Warn("Skipping chart", zap.String("chart", c.name), zap.Error(err))
			continue
		} else if err != nil {
			return fmt.Errorf("failed rendering %v chart: %w", c.name, err)
		}
		a.log.Info("Wrote chart", zap.String("chart", c.name), zap.String("path", p))
	}

	report.Build(a.data, a.cfg.Top).Print(stdout)

	if noMenu {
		return nil
	}
	return a.menuLoop(stdin, stdout)
}

// load fetches and parses the dataset, cleans it, and applies the
// country/date filters.
func (a *app) load() error {
	start, end, err := a.cfg.dates()
	if err != nil {
		return err
	}

	p, err := download.File(a.cfg.DataURL, a.cfg.DataPath, download.DefaultTimeout, a.cfg.Offline, a.log)
	if err != nil {
		return err
	}
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := owid.ParseCSV(f, a.log)
	if err != nil {
		return fmt.Errorf("failed parsing %v: %w", p, err)
	}
	st := t.Clean()
	a.log.Info("Cleaned dataset",
		zap.Int("rows", len(t.Rows)),
		zap.Int("dropped", st.Dropped),
		zap.Int("filled", st.Filled))
	if len(t.Rows) == 0 {
		return fmt.Errorf("no usable rows in %v", p)
	}

	if end.IsZero() {
		end = t.MaxDate()
	}
	a.data = t
	a.filtered = t.Filter(a.cfg.Countries, start, end)
	a.log.Info("Filtered dataset",
		zap.Strings("countries", a.filtered.Locations()),
		zap.String("start", start.Format(dateLayout)),
		zap.String("end", end.Format(dateLayout)),
		zap.Int("rows", len(a.filtered.Rows)))
	return nil
}

// lines converts the filtered table's per-country series for m into
// chart lines, sorted by country name.
func (a *app) lines(m owid.Metric, dashed bool) []chart.Line {
	sm := a.filtered.SeriesByLocation(m)
	names := make([]string, 0, len(sm))
	for n := range sm {
		names = append(names, n)
	}
	sort.Strings(names)

	lines := make([]chart.Line, 0, len(names))
	for _, n := range names {
		s := sm[n]
		lines = append(lines, chart.Line{
			Name:   n,
			Dates:  s.Dates,
			Values: s.Values,
			Dashed: dashed,
		})
	}
	return lines
}

// writePNG atomically writes a chart into the output directory and
// returns the final path.
func (a *app) writePNG(name string, render func(io.Writer) error) (string, error) {
	p := filepath.Join(a.cfg.OutDir, name)
	fw, err := filewriter.New(p)
	if err != nil {
		return "", err
	}
	if err := render(fw); err != nil {
		fw.Abort()
		return "", err
	}
	return p, fw.Close()
}

func (a *app) renderTotalCases() (string, error) {
	return a.writePNG("total_cases.png", func(w io.Writer) error {
		return chart.Lines("Total Cases Over Time", owid.TotalCases.Label(),
			a.lines(owid.TotalCases, false), w)
	})
}

func (a *app) renderTotalDeaths() (string, error) {
	return a.writePNG("total_deaths.png", func(w io.Writer) error {
		return chart.Lines("Total Deaths Over Time", owid.TotalDeaths.Label(),
			a.lines(owid.TotalDeaths, false), w)
	})
}

func (a *app) renderVaccinations() (string, error) {
	if !a.filtered.HasMetric(owid.TotalVaccinations) {
		return "", errNoVaccData
	}
	return a.writePNG("vaccinations.png", func(w io.Writer) error {
		err := chart.DualAxis("Daily New Cases & Total Vaccinations",
			"Daily New Cases", "Total Vaccinations",
			a.lines(owid.NewCases, false), a.lines(owid.TotalVaccinations, true), w)
		if errors.Is(err, chart.ErrNoData) {
			return errNoVaccData
		}
		return err
	})
}

func (a *app) renderCasesVsDeaths() (string, error) {
	return a.writePNG("cases_vs_deaths.png", func(w io.Writer) error {
		lines := append(a.lines(owid.NewCases, false), a.lines(owid.NewDeaths, true)...)
		for i := range lines {
			if lines[i].Dashed {
				lines[i].Name += " New Deaths"
			} else {
				lines[i].Name += " New Cases"
			}
		}
		return chart.Lines("New Cases vs New Deaths Over Time", "Count", lines, w)
	})
}

// renderMap draws the choropleth of each country's latest total cases
// over the full (unfiltered) dataset.
func (a *app) renderMap() (string, error) {
	gp, err := download.File(a.cfg.GeoURL, a.cfg.GeoPath, download.DefaultTimeout, a.cfg.Offline, a.log)
	if err != nil {
		return "", err
	}
	gf, err := os.Open(gp)
	if err != nil {
		return "", err
	}
	defer gf.Close()

	countries, err := geo.Load(gf)
	if err != nil {
		return "", fmt.Errorf("failed loading %v: %w", gp, err)
	}
	a.log.Debug("Loaded country shapes", zap.Int("countries", len(countries)))

	values := make(map[string]float64)
	for _, s := range a.data.Latest() {
		if s.Aggregate() {
			continue
		}
		if v, ok := s.Value(owid.TotalCases); ok {
			values[s.ISOCode] = v
		}
	}

	return a.writePNG("map_total_cases.png", func(w io.Writer) error {
		return geo.Choropleth(countries, values, "Global COVID-19 Total Cases", w)
	})
}
