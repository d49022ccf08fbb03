// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package geo

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	mapWidth  = 1000
	mapHeight = 500 // equirectangular: half the width
	topPad    = 30  // title strip
	bottomPad = 50  // legend strip
)

var (
	oceanColor  = color.RGBA{0xe8, 0xf1, 0xf7, 0xff}
	noDataColor = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	textColor   = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

// ramp holds the OrRd sequential color stops, light to dark.
var ramp = []color.RGBA{
	{0xff, 0xf7, 0xec, 0xff},
	{0xfe, 0xe8, 0xc8, 0xff},
	{0xfd, 0xd4, 0x9e, 0xff},
	{0xfd, 0xbb, 0x84, 0xff},
	{0xfc, 0x8d, 0x59, 0xff},
	{0xef, 0x65, 0x48, 0xff},
	{0xd7, 0x30, 0x1f, 0xff},
	{0xb3, 0x00, 0x00, 0xff},
	{0x7f, 0x00, 0x00, 0xff},
}

// Choropleth shades each country by values[ISO3] on the OrRd ramp,
// scaled linearly from zero to the largest value, and writes the map as
// a PNG. Countries absent from values are drawn in gray.
func Choropleth(countries []Country, values map[string]float64, title string, w io.Writer) error {
	if len(countries) == 0 {
		return fmt.Errorf("no countries to draw")
	}

	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, mapWidth, topPad+mapHeight+bottomPad))
	fill(img, img.Bounds(), oceanColor)

	for _, c := range countries {
		col := noDataColor
		if v, ok := values[c.ISO3]; ok && max > 0 {
			col = rampColor(v / max)
		}
		for _, poly := range c.Polygons {
			fillPolygon(img, poly, col)
		}
	}

	drawLabel(img, mapWidth/2-len(title)*basicfont.Face7x13.Advance/2, 18, title)
	drawLegend(img, max)

	return png.Encode(w, img)
}

// project maps a lon/lat point to pixel coordinates.
func project(p Point) (x, y float64) {
	x = (p.Lon + 180) / 360 * mapWidth
	y = topPad + (90-p.Lat)/180*mapHeight
	return x, y
}

// fillPolygon rasterizes poly with even-odd scanline filling. All of the
// polygon's rings contribute crossings, so holes come out unfilled.
func fillPolygon(img *image.RGBA, poly Polygon, col color.RGBA) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, ring := range poly {
		for _, pt := range ring {
			_, y := project(pt)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	if minY > maxY {
		return
	}

	y0 := int(math.Max(math.Floor(minY), topPad))
	y1 := int(math.Min(math.Ceil(maxY), topPad+mapHeight-1))
	var xs []float64
	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, ring := range poly {
			n := len(ring)
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				ax, ay := project(ring[i])
				bx, by := project(ring[(i+1)%n])
				if (ay <= yc) == (by <= yc) {
					continue
				}
				xs = append(xs, ax+(yc-ay)*(bx-ax)/(by-ay))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Max(math.Ceil(xs[i]-0.5), 0))
			x1 := int(math.Min(math.Floor(xs[i+1]-0.5), mapWidth-1))
			for x := x0; x <= x1; x++ {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// rampColor interpolates the OrRd ramp at t in [0, 1].
func rampColor(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	f := t * float64(len(ramp)-1)
	i := int(f)
	if i >= len(ramp)-1 {
		return ramp[len(ramp)-1]
	}
	frac := f - float64(i)
	a, b := ramp[i], ramp[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + frac*(float64(y)-float64(x))))
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 0xff}
}

// drawLegend draws a horizontal gradient bar with min/max labels in the
// bottom strip.
func drawLegend(img *image.RGBA, max float64) {
	const (
		barWidth  = 300
		barHeight = 12
	)
	x0 := (mapWidth - barWidth) / 2
	y0 := topPad + mapHeight + 15

	for x := 0; x < barWidth; x++ {
		col := rampColor(float64(x) / float64(barWidth-1))
		for y := y0; y < y0+barHeight; y++ {
			img.SetRGBA(x0+x, y, col)
		}
	}

	drawLabel(img, x0-12, y0+barHeight+14, "0")
	label := formatCount(max)
	drawLabel(img, x0+barWidth-len(label)*basicfont.Face7x13.Advance+12, y0+barHeight+14, label)
}

// drawLabel draws s with the fixed 7x13 face, with (x, y) at the left
// end of the baseline.
func drawLabel(img *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fill(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// formatCount renders a large count compactly, e.g. "12.3M".
func formatCount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
