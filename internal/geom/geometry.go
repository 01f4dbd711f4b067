package geom

// Type tags the kind of geometry a Geometry value holds.
type Type int

const (
	Point Type = iota
	LineString
	Polygon
)

// String renders the geometry type for debugging and error messages.
func (t Type) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Cmd is one step of a geometry's vertex iteration protocol.
type Cmd int

const (
	MoveTo Cmd = iota
	LineTo
	End
)

// Vertex is a single (x, y) coordinate pair with the command that produced
// it during iteration.
type Vertex struct {
	Cmd  Cmd
	X, Y float64
}

// Geometry is a tagged vertex sequence: a Point, a LineString, or a Polygon
// with an optional set of inner rings.
//
// A LineString is one MoveTo followed by zero or more LineTo. A Polygon's
// outer ring follows the same shape; each inner ring in Rings repeats it.
// Point geometries hold a single vertex and ignore Rings.
type Geometry struct {
	kind  Type
	outer []Vertex // outer ring / line / the lone point, MoveTo-first
	rings [][]Vertex
}

// NewPoint builds a single-point geometry.
func NewPoint(x, y float64) Geometry {
	return Geometry{kind: Point, outer: []Vertex{{Cmd: MoveTo, X: x, Y: y}}}
}

// NewLineString builds a linestring from ordered (x, y) pairs. The first
// vertex is tagged MoveTo, the rest LineTo, matching the invariant in
// spec.md §3: "A unioned linestring starts with a MoveTo and continues with
// LineTo."
func NewLineString(coords [][2]float64) Geometry {
	return Geometry{kind: LineString, outer: toVertices(coords)}
}

// NewPolygon builds a polygon from an outer ring and zero or more inner
// rings.
func NewPolygon(outer [][2]float64, inner ...[][2]float64) Geometry {
	g := Geometry{kind: Polygon, outer: toVertices(outer)}
	for _, ring := range inner {
		g.rings = append(g.rings, toVertices(ring))
	}
	return g
}

func toVertices(coords [][2]float64) []Vertex {
	verts := make([]Vertex, len(coords))
	for i, c := range coords {
		cmd := LineTo
		if i == 0 {
			cmd = MoveTo
		}
		verts[i] = Vertex{Cmd: cmd, X: c[0], Y: c[1]}
	}
	return verts
}

// Type reports the geometry's tag.
func (g Geometry) Type() Type { return g.kind }

// NumVertices returns the vertex count of the outer/only ring. Use Rings
// for a polygon's inner rings.
func (g Geometry) NumVertices() int { return len(g.outer) }

// VertexAt returns the (x, y) of the i'th vertex of the outer/only ring.
func (g Geometry) VertexAt(i int) (x, y float64) {
	v := g.outer[i]
	return v.X, v.Y
}

// Rings returns the polygon's inner rings, empty for non-polygon geometries
// or polygons with no holes.
func (g Geometry) Rings() [][]Vertex { return g.rings }

// Iterate walks the outer ring (and, for polygons, each inner ring in turn)
// emitting the MoveTo/LineTo/End command stream described in spec.md §3.
// visit returning false stops iteration early.
func (g Geometry) Iterate(visit func(v Vertex) bool) {
	if !iterateRing(g.outer, visit) {
		return
	}
	for _, ring := range g.rings {
		if !iterateRing(ring, visit) {
			return
		}
	}
}

func iterateRing(ring []Vertex, visit func(v Vertex) bool) bool {
	for _, v := range ring {
		if !visit(v) {
			return false
		}
	}
	return visit(Vertex{Cmd: End})
}

// Front returns the first vertex of the outer/only ring.
func (g Geometry) Front() (x, y float64) { return g.VertexAt(0) }

// Back returns the last vertex of the outer/only ring.
func (g Geometry) Back() (x, y float64) { return g.VertexAt(g.NumVertices() - 1) }

// AppendVertices appends LineTo vertices to the outer ring, in order, and
// returns the updated geometry. Used by the unionizer splice (§4.4) to
// extend a destination linestring.
func (g Geometry) AppendVertices(coords [][2]float64) Geometry {
	for _, c := range coords {
		g.outer = append(g.outer, Vertex{Cmd: LineTo, X: c[0], Y: c[1]})
	}
	return g
}

// ReversedLineString returns a new linestring geometry with the outer ring's
// vertex order reversed, MoveTo re-tagged onto the new first vertex. Used by
// the unionizer's front-front splice case (§4.4).
func (g Geometry) ReversedLineString() Geometry {
	n := len(g.outer)
	rev := make([]Vertex, n)
	for i, v := range g.outer {
		cmd := LineTo
		if i == n-1 {
			cmd = MoveTo
		}
		rev[n-1-i] = Vertex{Cmd: cmd, X: v.X, Y: v.Y}
	}
	return Geometry{kind: LineString, outer: rev}
}
