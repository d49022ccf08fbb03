// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"ADMIN": "Squareland", "ISO_A3": "SQL", "ADM0_A3": "SQL"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [40, 0], [40, 40], [0, 40], [0, 0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "France", "ISO_A3": "-99", "ADM0_A3": "FRA"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-5, 42], [8, 42], [8, 51], [-5, 51], [-5, 42]]],
          [[[8, 41], [10, 41], [10, 43], [8, 43], [8, 41]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"ADMIN": "Pointy", "ISO_A3": "PTY", "ADM0_A3": "PTY"},
      "geometry": {"type": "Point", "coordinates": [1, 2]}
    }
  ]
}`

func TestLoad(t *testing.T) {
	countries, err := Load(strings.NewReader(testGeoJSON))
	require.NoError(t, err)

	// The Point feature is skipped.
	require.Len(t, countries, 2)

	sq := countries[0]
	assert.Equal(t, "Squareland", sq.Name)
	assert.Equal(t, "SQL", sq.ISO3)
	require.Len(t, sq.Polygons, 1)
	require.Len(t, sq.Polygons[0], 1)
	assert.Len(t, sq.Polygons[0][0], 5)
	assert.Equal(t, Point{Lon: 40, Lat: 40}, sq.Polygons[0][0][2])

	// ISO_A3 of -99 falls back to ADM0_A3.
	fr := countries[1]
	assert.Equal(t, "FRA", fr.ISO3)
	assert.Len(t, fr.Polygons, 2)
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(strings.NewReader("not json"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{"type": "FeatureCollection", "features": []}`))
	assert.Error(t, err)
}
