package geom

import "math"

// Envelope is an axis-aligned bounding box.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyEnvelope returns an envelope in an inverted state that ExtendPoint will
// correctly widen from on the first point.
func EmptyEnvelope() Envelope {
	return Envelope{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Valid reports whether the envelope has seen at least one point.
func (e Envelope) Valid() bool { return e.MinX <= e.MaxX && e.MinY <= e.MaxY }

// ExtendPoint widens e, if needed, to include (x, y).
func (e Envelope) ExtendPoint(x, y float64) Envelope {
	if x < e.MinX {
		e.MinX = x
	}
	if y < e.MinY {
		e.MinY = y
	}
	if x > e.MaxX {
		e.MaxX = x
	}
	if y > e.MaxY {
		e.MaxY = y
	}
	return e
}

// Union returns the smallest envelope containing both e and o.
func (e Envelope) Union(o Envelope) Envelope {
	if !o.Valid() {
		return e
	}
	if !e.Valid() {
		return o
	}
	return Envelope{
		MinX: math.Min(e.MinX, o.MinX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// Intersects reports whether e and o overlap, including touching edges.
func (e Envelope) Intersects(o Envelope) bool {
	if !e.Valid() || !o.Valid() {
		return false
	}
	return e.MinX <= o.MaxX && e.MaxX >= o.MinX && e.MinY <= o.MaxY && e.MaxY >= o.MinY
}

// Envelope computes the bounding box of a geometry's outer ring and any
// inner rings.
func (g Geometry) Envelope() Envelope {
	env := EmptyEnvelope()
	g.Iterate(func(v Vertex) bool {
		if v.Cmd != End {
			env = env.ExtendPoint(v.X, v.Y)
		}
		return true
	})
	return env
}
