package admin

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/tileforge/vtpost/internal/geom"
)

func TestSpatialIndexQueryFindsIntersecting(t *testing.T) {
	entries := []Entry{
		NewEntry(orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}, geom.String("a"), 0),
		NewEntry(orb.Polygon{orb.Ring{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}}, geom.String("b"), 1),
	}
	idx := BuildSpatialIndex(entries)

	found := idx.Query(geom.Envelope{MinX: 0.2, MinY: 0.2, MaxX: 0.8, MaxY: 0.8})
	if len(found) != 1 {
		t.Fatalf("got %d entries, want 1", len(found))
	}
	v, _ := found[0].ParamValue.Str()
	if v != "a" {
		t.Errorf("matched entry value = %q, want a", v)
	}
}

func TestSpatialIndexQueryEmptyEnvelope(t *testing.T) {
	idx := BuildSpatialIndex(nil)
	found := idx.Query(geom.EmptyEnvelope())
	if len(found) != 0 {
		t.Errorf("got %d entries from an empty index, want 0", len(found))
	}
}
