// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derat/covidtracker/geo"
	"github.com/derat/covidtracker/owid"
)

const dateLayout = "2006-01-02"

// defaultCountries matches the original tracker's comparison set.
var defaultCountries = []string{"United States", "India", "Brazil"}

// config holds everything the pipeline needs. Values are layered:
// defaults, then the YAML config file, then environment variables, then
// command-line flags.
type config struct {
	Countries []string `yaml:"countries"`
	Start     string   `yaml:"start"` // YYYY-MM-DD
	End       string   `yaml:"end"`   // YYYY-MM-DD; empty means latest date in data
	DataURL   string   `yaml:"data_url"`
	DataPath  string   `yaml:"data_path"`
	GeoURL    string   `yaml:"geo_url"`
	GeoPath   string   `yaml:"geo_path"`
	OutDir    string   `yaml:"out_dir"`
	Top       int      `yaml:"top"`
	Offline   bool     `yaml:"offline"`
}

func defaultConfig() config {
	return config{
		Countries: append([]string{}, defaultCountries...),
		Start:     "2021-01-01",
		DataURL:   owid.DataURL,
		DataPath:  owid.LocalPath,
		GeoURL:    geo.GeoURL,
		GeoPath:   geo.LocalPath,
		OutDir:    "out",
		Top:       5,
	}
}

// mergeFile overlays settings from the YAML file at p. With missing=true
// a nonexistent file is not an error (used for the optional default path).
func (c *config) mergeFile(p string, missing bool) error {
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) && missing {
		return nil
	} else if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("bad config file %v: %w", p, err)
	}
	return nil
}

// mergeEnv overlays settings from the environment (typically loaded from
// a .env file).
func (c *config) mergeEnv() {
	if v := os.Getenv("COVID_DATA_URL"); v != "" {
		c.DataURL = v
	}
	if v := os.Getenv("COVID_GEO_URL"); v != "" {
		c.GeoURL = v
	}
}

// dates parses the configured date window. A zero end time means "use
// the latest date present in the data".
func (c *config) dates() (start, end time.Time, err error) {
	if start, err = time.Parse(dateLayout, c.Start); err != nil {
		return start, end, fmt.Errorf("bad start date %q: %w", c.Start, err)
	}
	if c.End != "" {
		if end, err = time.Parse(dateLayout, c.End); err != nil {
			return start, end, fmt.Errorf("bad end date %q: %w", c.End, err)
		}
		if end.Before(start) {
			return start, end, fmt.Errorf("end date %q before start date %q", c.End, c.Start)
		}
	}
	return start, end, nil
}
