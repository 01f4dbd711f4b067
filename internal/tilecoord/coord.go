// Package tilecoord provides the z/x/y tile pyramid coordinate and the
// projection-extent context processors consult for distance-based
// heuristics (spec.md §6, MapContext).
package tilecoord

import "math"

// earthCircumference is the Web Mercator world extent in projection units
// (meters), the standard EPSG:3857 convention used by the z/x/y scheme.
const earthCircumference = 2 * math.Pi * 6378137.0

// Coord is a tile pyramid coordinate.
type Coord struct {
	Z, X, Y uint32
}

// Extent returns the tile's bounding box in EPSG:3857 projection units.
func (c Coord) Extent() (minX, minY, maxX, maxY float64) {
	tiles := math.Exp2(float64(c.Z))
	tileSize := earthCircumference / tiles
	origin := earthCircumference / 2

	minX = float64(c.X)*tileSize - origin
	maxX = minX + tileSize
	maxY = origin - float64(c.Y)*tileSize
	minY = maxY - tileSize
	return
}

// MapContext supplies the per-axis projection extent a processor needs for
// distance-scaled heuristics (spec.md §6). Adminizer ignores it.
type MapContext interface {
	ExtentWidth() float64
	ExtentHeight() float64
}

// TileContext is the concrete MapContext for one z/x/y tile request.
type TileContext struct {
	Coord Coord
}

// ExtentWidth returns the tile's width in projection units.
func (t TileContext) ExtentWidth() float64 {
	minX, _, maxX, _ := t.Coord.Extent()
	return maxX - minX
}

// ExtentHeight returns the tile's height in projection units.
func (t TileContext) ExtentHeight() float64 {
	_, minY, _, maxY := t.Coord.Extent()
	return maxY - minY
}
