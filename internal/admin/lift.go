package admin

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tileforge/vtpost/internal/geom"
)

// dedupEpsilon is the absolute tolerance used to drop a repeated vertex
// while lifting a command-stream geometry into an orb ring (spec.md §4.6).
const dedupEpsilon = 1e-12

// liftPoint lifts a Point geometry to its single orb.Point.
func liftPoint(g geom.Geometry) orb.Point {
	x, y := g.VertexAt(0)
	return orb.Point{x, y}
}

// liftLineString lifts a LineString geometry to an orb.LineString,
// collapsing any vertex within dedupEpsilon of its predecessor.
func liftLineString(g geom.Geometry) orb.LineString {
	var ls orb.LineString
	g.Iterate(func(v geom.Vertex) bool {
		if v.Cmd == geom.End {
			return true
		}
		if len(ls) > 0 && closeEnough(ls[len(ls)-1], orb.Point{v.X, v.Y}) {
			return true
		}
		ls = append(ls, orb.Point{v.X, v.Y})
		return true
	})
	return ls
}

// liftPolygon lifts a Polygon geometry to an orb.Polygon: the outer ring
// followed by each inner ring, each deduplicated as in liftLineString.
func liftPolygon(g geom.Geometry) orb.Polygon {
	poly := orb.Polygon{ringFromVertices(g.NumVertices(), g.VertexAt)}
	for _, ring := range g.Rings() {
		idx := ring
		poly = append(poly, ringFromVertexSlice(idx))
	}
	return poly
}

func ringFromVertices(n int, at func(int) (float64, float64)) orb.Ring {
	var ring orb.Ring
	for i := 0; i < n; i++ {
		x, y := at(i)
		p := orb.Point{x, y}
		if len(ring) > 0 && closeEnough(ring[len(ring)-1], p) {
			continue
		}
		ring = append(ring, p)
	}
	return ring
}

func ringFromVertexSlice(vs []geom.Vertex) orb.Ring {
	var ring orb.Ring
	for _, v := range vs {
		p := orb.Point{v.X, v.Y}
		if len(ring) > 0 && closeEnough(ring[len(ring)-1], p) {
			continue
		}
		ring = append(ring, p)
	}
	return ring
}

func closeEnough(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) < dedupEpsilon && math.Abs(a[1]-b[1]) < dedupEpsilon
}
