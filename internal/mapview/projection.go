package mapview

import (
	"math"

	"waylog/internal/geo"
)

// Slippy-map web-Mercator math. World coordinates are pixels at the
// given zoom level, 256 px per tile, origin at the north-west corner.
const tileSize = 256

// Terminal cells are roughly twice as tall as wide, so a cell spans
// more world pixels vertically than horizontally.
const (
	cellPxX = 8
	cellPxY = 16
)

// Web-Mercator is undefined at the poles; clamp at ~85.05° like
// slippy-map libraries do.
const maxLat = 85.05112878

// project converts a coordinate to world pixels at zoom.
func project(c geo.Coord, zoom int) (x, y float64) {
	lat := math.Max(-maxLat, math.Min(maxLat, c.Lat))
	scale := float64(tileSize) * math.Exp2(float64(zoom))
	x = (c.Lng + 180) / 360 * scale
	rad := lat * math.Pi / 180
	y = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * scale
	return x, y
}

// unproject converts world pixels at zoom back to a coordinate.
func unproject(x, y float64, zoom int) geo.Coord {
	scale := float64(tileSize) * math.Exp2(float64(zoom))
	lng := x/scale*360 - 180
	n := math.Pi - 2*math.Pi*y/scale
	lat := 180 / math.Pi * math.Atan(0.5*(math.Exp(n)-math.Exp(-n)))
	return geo.Coord{Lat: lat, Lng: lng}
}

func clampZoom(zoom int) int {
	if zoom < 1 {
		return 1
	}
	if zoom > 18 {
		return 18
	}
	return zoom
}
