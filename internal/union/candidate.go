package union

import (
	"math"
	"sort"

	"github.com/tileforge/vtpost/internal/curve"
	"github.com/tileforge/vtpost/internal/geom"
)

// Position names which end of a linestring a Candidate refers to.
type Position int

const (
	Front Position = iota
	Back
)

// Candidate is a derived, non-owning reference to one linestring endpoint
// (spec.md §3). Its lifetime spans a single pass of a single unionizer
// iteration: FeatureIdx/GeomIdx index into the layer that built it.
type Candidate struct {
	FeatureIdx  int
	GeomIdx     int
	Position    Position
	X, Y        float64
	Directional bool
	Dx, Dy      float64
	tagKey      []geom.Value
}

// Group is an adjacency group: candidates sharing the same (x, y) and the
// same values across all configured match tags. Every pair within a group
// is a potential union (spec.md §4.2).
type Group struct {
	Candidates []Candidate
}

// BuildIndex scans layer for linestring endpoints and groups them by the
// comparator in spec.md §4.2: primary key (x, y), secondary key the tuple
// of match-tag values in matchTags order.
//
// A feature is only considered if it carries every tag named in matchTags
// ("has all required match-tags") and has at least one linestring geometry
// with 2 or more vertices.
func BuildIndex(layer *geom.Layer, matchTags, preserveDirectionTags []string, ratio float64, extentW, extentH float64) []Group {
	budgetX := extentW * ratio
	budgetY := extentH * ratio

	var candidates []Candidate
	for fi, f := range layer.Features() {
		if !hasAllTags(f, matchTags) {
			continue
		}
		directional := hasAnyTag(f, preserveDirectionTags)
		tagKey := tagValues(f, matchTags)

		for gi, g := range f.Geometries() {
			if g.Type() != geom.LineString || g.NumVertices() < 2 {
				continue
			}

			frontX, frontY := g.Front()
			fdx, fdy := direction(g, Front, budgetX, budgetY)
			candidates = append(candidates, Candidate{
				FeatureIdx: fi, GeomIdx: gi, Position: Front,
				X: frontX, Y: frontY,
				Directional: directional,
				Dx:          fdx, Dy: fdy,
				tagKey: tagKey,
			})

			backX, backY := g.Back()
			bdx, bdy := direction(g, Back, budgetX, budgetY)
			candidates = append(candidates, Candidate{
				FeatureIdx: fi, GeomIdx: gi, Position: Back,
				X: backX, Y: backY,
				Directional: directional,
				Dx:          bdx, Dy: bdy,
				tagKey: tagKey,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateLess(candidates[i], candidates[j])
	})

	var groups []Group
	for i := 0; i < len(candidates); {
		j := i + 1
		for j < len(candidates) && candidateEqualKey(candidates[i], candidates[j]) {
			j++
		}
		groups = append(groups, Group{Candidates: candidates[i:j]})
		i = j
	}
	return groups
}

func candidateLess(a, b Candidate) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return tagKeyLess(a.tagKey, b.tagKey)
}

func candidateEqualKey(a, b Candidate) bool {
	if a.X != b.X || a.Y != b.Y {
		return false
	}
	return tagKeyEqual(a.tagKey, b.tagKey)
}

func tagKeyLess(a, b []geom.Value) bool {
	for i := range a {
		if a[i].Equal(b[i]) {
			continue
		}
		return a[i].Less(b[i])
	}
	return false
}

func tagKeyEqual(a, b []geom.Value) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func hasAllTags(f *geom.Feature, tags []string) bool {
	for _, t := range tags {
		if !f.Has(t) {
			return false
		}
	}
	return true
}

func hasAnyTag(f *geom.Feature, tags []string) bool {
	for _, t := range tags {
		if f.Has(t) {
			return true
		}
	}
	return false
}

func tagValues(f *geom.Feature, tags []string) []geom.Value {
	vals := make([]geom.Value, len(tags))
	for i, t := range tags {
		v, _ := f.Get(t)
		vals[i] = v
	}
	return vals
}

// direction computes the approximate direction vector a linestring leaves
// from its Front or Back endpoint, sampling vertices moving inward per
// spec.md §4.1, scaled to unit length ((0, 0) for a degenerate curve).
func direction(g geom.Geometry, pos Position, budgetX, budgetY float64) (dx, dy float64) {
	n := g.NumVertices()
	x0, y0 := g.Front()
	if pos == Back {
		x0, y0 = g.Back()
	}

	a := curve.New(x0, y0, budgetX, budgetY)

	if pos == Front {
		for i := 1; i < n; i++ {
			x, y := g.VertexAt(i)
			if !a.Consume(x, y) {
				break
			}
		}
	} else {
		for i := n - 2; i >= 0; i-- {
			x, y := g.VertexAt(i)
			if !a.Consume(x, y) {
				break
			}
		}
	}

	dx, dy, degenerate := a.Direction()
	length := math.Hypot(dx, dy)
	if degenerate || length == 0 {
		return 0, 0
	}
	return dx / length, dy / length
}
