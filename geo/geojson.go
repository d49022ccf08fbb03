// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package geo loads country outlines and renders choropleth world maps.
package geo

import (
	"encoding/json"
	"fmt"
	"io"
)

// GeoURL is the Natural Earth 1:110m country dataset as GeoJSON.
const GeoURL = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson"

// LocalPath is the default on-disk cache for the downloaded GeoJSON.
const LocalPath = "ne_110m_admin_0_countries.geojson"

// Point is a lon/lat coordinate in degrees.
type Point struct {
	Lon, Lat float64
}

// Ring is a closed ring of points. Polygon holds an outer ring plus any
// hole rings; filling uses the even-odd rule, so holes need no special
// handling.
type (
	Ring    []Point
	Polygon []Ring
)

// Country is one country's name, ISO 3166-1 alpha-3 code, and shape.
type Country struct {
	Name     string
	ISO3     string
	Polygons []Polygon
}

// GeoJSON feature layout, limited to the fields the map needs.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties struct {
		Admin  string `json:"ADMIN"`
		ISOA3  string `json:"ISO_A3"`
		ADM0A3 string `json:"ADM0_A3"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// Load parses Natural Earth admin-0 GeoJSON from r. Features without a
// usable ISO code or polygon geometry are skipped.
func Load(r io.Reader) ([]Country, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed decoding GeoJSON: %w", err)
	}

	var countries []Country
	for _, f := range fc.Features {
		// Natural Earth reports ISO_A3 as "-99" for a few countries
		// (e.g. France, Norway); ADM0_A3 carries the real code there.
		iso := f.Properties.ISOA3
		if iso == "" || iso == "-99" {
			iso = f.Properties.ADM0A3
		}
		if iso == "" || iso == "-99" {
			continue
		}

		var polys []Polygon
		switch f.Geometry.Type {
		case "Polygon":
			var coords [][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("bad polygon for %v: %w", iso, err)
			}
			polys = append(polys, toPolygon(coords))
		case "MultiPolygon":
			var coords [][][][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("bad multipolygon for %v: %w", iso, err)
			}
			for _, pc := range coords {
				polys = append(polys, toPolygon(pc))
			}
		default:
			continue
		}

		countries = append(countries, Country{
			Name:     f.Properties.Admin,
			ISO3:     iso,
			Polygons: polys,
		})
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("no country features found")
	}
	return countries, nil
}

func toPolygon(coords [][][]float64) Polygon {
	poly := make(Polygon, 0, len(coords))
	for _, rc := range coords {
		ring := make(Ring, 0, len(rc))
		for _, pt := range rc {
			if len(pt) < 2 {
				continue
			}
			ring = append(ring, Point{Lon: pt[0], Lat: pt[1]})
		}
		poly = append(poly, ring)
	}
	return poly
}
