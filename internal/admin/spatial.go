package admin

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/tileforge/vtpost/internal/geom"
)

// rtreeNodeMin and rtreeNodeMax set the quadratic-split node capacity
// spec.md §4.5 requires (bulk-loaded, capacity 16), mirroring the teacher's
// github.com/dhconnelly/rtreego.NewTree(dims, min, max) call pattern
// (pkg/s57/index.go, pkg/s57/s57.go).
const (
	rtreeDims    = 2
	rtreeNodeMin = 8
	rtreeNodeMax = 16
)

// Entry is a polygon lifted into the spatial backend, paired with the
// attribute value taken from the source feature and a monotonic index that
// establishes tie-break order (spec.md §3, §4.6).
type Entry struct {
	Polygon    orb.Polygon
	ParamValue geom.Value
	Index      int
	env        geom.Envelope
}

// NewEntry builds an Entry and precomputes its bounding envelope.
func NewEntry(poly orb.Polygon, value geom.Value, index int) Entry {
	env := geom.EmptyEnvelope()
	for _, ring := range poly {
		for _, p := range ring {
			env = env.ExtendPoint(p[0], p[1])
		}
	}
	return Entry{Polygon: poly, ParamValue: value, Index: index, env: env}
}

// Bounds implements rtreego.Spatial.
func (e Entry) Bounds() rtreego.Rect {
	lengths := []float64{e.env.MaxX - e.env.MinX, e.env.MaxY - e.env.MinY}
	// rtreego requires strictly positive side lengths.
	const epsilon = 1e-9
	if lengths[0] <= 0 {
		lengths[0] = epsilon
	}
	if lengths[1] <= 0 {
		lengths[1] = epsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{e.env.MinX, e.env.MinY}, lengths)
	return rect
}

// SpatialIndex is the bulk-loaded R-tree over auxiliary polygon entries
// (spec.md §4.5). It is owned by a single adminizer Process call and
// discarded on return.
type SpatialIndex struct {
	tree    *rtreego.Rtree
	entries []Entry
}

// BuildSpatialIndex bulk-loads entries into a fresh R-tree using rtreego's
// packing constructor (spec.md §4.5: inputs are known up front, so the tree
// is packed once rather than grown by repeated Insert calls).
func BuildSpatialIndex(entries []Entry) *SpatialIndex {
	objs := make([]rtreego.Spatial, len(entries))
	for i, e := range entries {
		objs[i] = e
	}
	tree := rtreego.NewTree(rtreeDims, rtreeNodeMin, rtreeNodeMax, objs...)
	return &SpatialIndex{tree: tree, entries: entries}
}

// Query returns candidate entries whose envelope intersects env, in no
// particular order; callers apply the precise geometric predicate and the
// lowest-index tie-break themselves (spec.md §4.6).
func (s *SpatialIndex) Query(env geom.Envelope) []Entry {
	if !env.Valid() {
		return nil
	}
	lengths := []float64{env.MaxX - env.MinX, env.MaxY - env.MinY}
	const epsilon = 1e-9
	if lengths[0] <= 0 {
		lengths[0] = epsilon
	}
	if lengths[1] <= 0 {
		lengths[1] = epsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{env.MinX, env.MinY}, lengths)

	results := s.tree.SearchIntersect(rect)
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(Entry))
	}
	return entries
}
