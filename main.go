// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// covidtracker loads the OWID COVID-19 dataset, cleans it, and renders
// charts, a world map, and a textual summary for a configurable set of
// countries and dates.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		countries []string
		start     string
		end       string
		dataPath  string
		geoPath   string
		outDir    string
		top       int
		offline   bool
		noMenu    bool
		noDisplay bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "covidtracker",
		Short: "Chart COVID-19 cases, deaths, and vaccinations from the OWID dataset",
		Long: `covidtracker downloads the Our World in Data COVID-19 dataset (falling
back to a local copy), cleans and filters it, and writes time-series
charts, a choropleth world map, and a summary table. An interactive menu
re-renders individual charts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			// A .env file may supply COVID_DATA_URL / COVID_GEO_URL.
			if err := godotenv.Load(); err == nil {
				log.Debug("Loaded .env file")
			}

			cfg := defaultConfig()
			if cfgFile != "" {
				err = cfg.mergeFile(cfgFile, false)
			} else {
				err = cfg.mergeFile("covidtracker.yaml", true)
			}
			if err != nil {
				return err
			}
			cfg.mergeEnv()

			// Flags win over everything else.
			fl := cmd.Flags()
			if fl.Changed("countries") {
				cfg.Countries = countries
			}
			if fl.Changed("start") {
				cfg.Start = start
			}
			if fl.Changed("end") {
				cfg.End = end
			}
			if fl.Changed("data") {
				cfg.DataPath = dataPath
			}
			if fl.Changed("geo") {
				cfg.GeoPath = geoPath
			}
			if fl.Changed("out") {
				cfg.OutDir = outDir
			}
			if fl.Changed("top") {
				cfg.Top = top
			}
			if offline {
				cfg.Offline = true
			}

			a := &app{cfg: cfg, log: log, display: !noDisplay}
			return a.run(os.Stdin, os.Stdout, noMenu)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&cfgFile, "config", "", "YAML config file (default covidtracker.yaml if present)")
	fl.StringSliceVar(&countries, "countries", defaultCountries, "Countries to compare")
	fl.StringVar(&start, "start", "2021-01-01", "Start of the date window (YYYY-MM-DD)")
	fl.StringVar(&end, "end", "", "End of the date window (default: latest date in data)")
	fl.StringVar(&dataPath, "data", "", "Local path for the OWID CSV")
	fl.StringVar(&geoPath, "geo", "", "Local path for the Natural Earth GeoJSON")
	fl.StringVar(&outDir, "out", "out", "Directory for rendered charts")
	fl.IntVar(&top, "top", 5, "Number of countries in the summary table")
	fl.BoolVar(&offline, "offline", false, "Never download; use local files only")
	fl.BoolVar(&noMenu, "no-menu", false, "Skip the interactive menu")
	fl.BoolVar(&noDisplay, "no-display", false, "Don't open interactive gnuplot windows")
	fl.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
