package union

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tileforge/vtpost/internal/geom"
	"github.com/tileforge/vtpost/internal/tilecoord"
)

// Unionizer merges compatible linestrings that meet at common endpoints,
// iterating to a fixed point (spec.md §4.4).
type Unionizer struct {
	cfg Config
}

// New constructs a Unionizer, validating cfg per spec.md §7.
func New(cfg Config) (*Unionizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Unionizer{cfg: cfg}, nil
}

// Process runs the fixed-point join described in spec.md §4.4 over layer,
// mutating it in place.
func (u *Unionizer) Process(layer *geom.Layer, mapCtx tilecoord.MapContext) {
	budgetRatio := u.cfg.AngleSampleRatio

	for iter := uint64(0); iter < u.cfg.MaxIterations; iter++ {
		groups := BuildIndex(layer, u.cfg.MatchTags, u.cfg.PreserveDirectionTags, budgetRatio,
			mapCtx.ExtentWidth(), mapCtx.ExtentHeight())

		featureID := func(idx int) int64 { return layer.Features()[idx].ID }

		var pairs []Pair
		for _, g := range groups {
			if len(g.Candidates) < 2 {
				continue
			}
			pairs = append(pairs, ScoreGroup(g, u.cfg.Heuristic, featureID)...)
		}

		sort.SliceStable(pairs, func(i, j int) bool {
			if pairs[i].Score != pairs[j].Score {
				return pairs[i].Score < pairs[j].Score
			}
			return pairKey(pairs[i], featureID) < pairKey(pairs[j], featureID)
		})

		touched := make(map[int]bool)
		spliced := false

		for _, p := range pairs {
			if touched[p.A.FeatureIdx] || touched[p.B.FeatureIdx] {
				continue
			}
			u.splice(layer, p)
			touched[p.A.FeatureIdx] = true
			touched[p.B.FeatureIdx] = true
			spliced = true
		}

		if !spliced {
			break
		}
	}

	layer.CullEmpty()
}

// splice performs the geometry-level join and tag reconciliation for one
// accepted pair, per spec.md §4.4.
func (u *Unionizer) splice(layer *geom.Layer, p Pair) {
	features := layer.Features()
	a := features[p.A.FeatureIdx]
	b := features[p.B.FeatureIdx]
	aGeom := a.Geometries()[p.A.GeomIdx]
	bGeom := b.Geometries()[p.B.GeomIdx]

	aPos, bPos := p.A.Position, p.B.Position

	var merged geom.Geometry
	replaceInA := true

	switch {
	case aPos == Back && bPos == Front:
		merged = spliceBackFront(aGeom, bGeom)
	case aPos == Front && bPos == Back:
		merged = spliceBackFront(bGeom, aGeom)
	case aPos == Back && bPos == Back:
		merged = spliceBackBack(aGeom, bGeom)
	case aPos == Front && bPos == Front:
		merged = spliceFrontFront(aGeom, bGeom)
		replaceInA = false
	}

	if replaceInA {
		a.SetGeometry(p.A.GeomIdx, merged)
		b.RemoveGeometry(p.B.GeomIdx)
	} else {
		// Front-front: both originals are erased; the new geometry is
		// pushed onto a's parent feature (spec.md §4.4).
		a.RemoveGeometry(p.A.GeomIdx)
		bIdx := p.B.GeomIdx
		if p.B.FeatureIdx == p.A.FeatureIdx && bIdx > p.A.GeomIdx {
			bIdx--
		}
		b.RemoveGeometry(bIdx)
		a.AddGeometry(merged)
	}

	var kept geom.Value
	hasKept := false
	if u.cfg.KeepIDsTag != "" {
		kept, hasKept = a.Get(u.cfg.KeepIDsTag)
	}
	u.reconcileTags(a, b)
	if u.cfg.KeepIDsTag != "" {
		if hasKept {
			a.Put(u.cfg.KeepIDsTag, kept)
		}
		appendKeptID(a, b.ID, u.cfg.KeepIDsTag)
	}
}

// spliceBackFront appends b's vertices (skipping its leading MoveTo) onto
// a's linestring.
func spliceBackFront(a, b geom.Geometry) geom.Geometry {
	coords := tailCoords(b)
	return a.AppendVertices(coords)
}

// spliceBackBack appends b's vertices in reverse onto a's linestring.
func spliceBackBack(a, b geom.Geometry) geom.Geometry {
	n := b.NumVertices()
	coords := make([][2]float64, 0, n-1)
	for i := n - 2; i >= 0; i-- {
		x, y := b.VertexAt(i)
		coords = append(coords, [2]float64{x, y})
	}
	return a.AppendVertices(coords)
}

// spliceFrontFront builds a brand new linestring: a reversed, then b's
// vertices 1..n.
func spliceFrontFront(a, b geom.Geometry) geom.Geometry {
	merged := a.ReversedLineString()
	return merged.AppendVertices(tailCoords(b))
}

func tailCoords(g geom.Geometry) [][2]float64 {
	n := g.NumVertices()
	coords := make([][2]float64, 0, n-1)
	for i := 1; i < n; i++ {
		x, y := g.VertexAt(i)
		coords = append(coords, [2]float64{x, y})
	}
	return coords
}

// reconcileTags applies the configured TagStrategy (spec.md §4.4): intersect
// drops any key where b disagrees or lacks it; accumulate additionally
// copies b's extra keys onto a.
func (u *Unionizer) reconcileTags(a, b *geom.Feature) {
	a.Entries(func(key string, av geom.Value) {
		bv, ok := b.Get(key)
		if !ok || !av.Equal(bv) {
			a.SetNull(key)
		}
	})

	if u.cfg.TagStrategy == Accumulate {
		b.Entries(func(key string, bv geom.Value) {
			if !a.Has(key) {
				a.Put(key, bv)
			}
		})
	}
}

// appendKeptID implements the keep_ids_tag resolution documented in
// SPEC_FULL.md §12: append the consumed feature's id to a comma-joined
// string attribute on the destination feature.
func appendKeptID(dest *geom.Feature, id int64, tag string) {
	existing, ok := dest.Get(tag)
	idStr := strconv.FormatInt(id, 10)
	if !ok || existing.IsNull() {
		dest.Put(tag, geom.String(idStr))
		return
	}
	s, isStr := existing.Str()
	if !isStr || s == "" {
		dest.Put(tag, geom.String(idStr))
		return
	}
	dest.Put(tag, geom.String(strings.Join([]string{s, idStr}, ",")))
}
