package admin

import "github.com/paulmach/orb"

// pointInRing reports whether p lies inside ring using the standard
// even-odd ray-casting test. No third-party geometry library in the
// example corpus exposes a generic point-in-polygon predicate over
// orb.Ring, so this is hand-rolled (DESIGN.md documents the justification).
func pointInRing(p orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi[1] > p[1]) != (pj[1] > p[1]) {
			xIntersect := (pj[0]-pi[0])*(p[1]-pi[1])/(pj[1]-pi[1]) + pi[0]
			if p[0] < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// pointInPolygon applies the outer-ring-minus-holes rule: inside the outer
// ring and outside every inner ring.
func pointInPolygon(p orb.Point, poly orb.Polygon) bool {
	if len(poly) == 0 || !pointInRing(p, poly[0]) {
		return false
	}
	for _, hole := range poly[1:] {
		if pointInRing(p, hole) {
			return false
		}
	}
	return true
}

// segmentsIntersect reports whether segments (p1,p2) and (p3,p4) cross or
// touch, via the standard orientation test.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}

// ringIntersectsRing reports whether any edge of a crosses any edge of b.
func ringIntersectsRing(a, b orb.Ring) bool {
	for i := 0; i < len(a); i++ {
		a1 := a[i]
		a2 := a[(i+1)%len(a)]
		for j := 0; j < len(b); j++ {
			b1 := b[j]
			b2 := b[(j+1)%len(b)]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// lineIntersectsRing reports whether any segment of the open path ls
// crosses any edge of ring. Unlike ringIntersectsRing, it never tests a
// closing edge between ls's first and last vertices, since an open
// linestring has no such edge.
func lineIntersectsRing(ls orb.LineString, ring orb.Ring) bool {
	for i := 0; i+1 < len(ls); i++ {
		l1, l2 := ls[i], ls[i+1]
		for j := 0; j < len(ring); j++ {
			r1 := ring[j]
			r2 := ring[(j+1)%len(ring)]
			if segmentsIntersect(l1, l2, r1, r2) {
				return true
			}
		}
	}
	return false
}

// lineStringIntersectsPolygon reports whether any vertex of ls lies inside
// poly, or any segment of ls crosses an edge of poly's outer or inner
// rings.
func lineStringIntersectsPolygon(ls orb.LineString, poly orb.Polygon) bool {
	for _, p := range ls {
		if pointInPolygon(p, poly) {
			return true
		}
	}
	if len(poly) == 0 {
		return false
	}
	for _, ring := range poly {
		if lineIntersectsRing(ls, ring) {
			return true
		}
	}
	return false
}

// polygonIntersectsPolygon reports whether two polygons overlap: either
// contains a vertex of the other, or their outer rings cross.
func polygonIntersectsPolygon(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, p := range a[0] {
		if pointInPolygon(p, b) {
			return true
		}
	}
	for _, p := range b[0] {
		if pointInPolygon(p, a) {
			return true
		}
	}
	return ringIntersectsRing(a[0], b[0])
}
