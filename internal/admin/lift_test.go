package admin

import (
	"testing"

	"github.com/tileforge/vtpost/internal/geom"
)

func TestLiftLineStringDropsDuplicateVertices(t *testing.T) {
	g := geom.NewLineString([][2]float64{{0, 0}, {0, 0}, {1, 0}, {1, 0 + 1e-13}})
	ls := liftLineString(g)
	if len(ls) != 2 {
		t.Fatalf("got %d points, want 2 after dedup", len(ls))
	}
}

func TestLiftPolygonSeparatesOuterAndInnerRings(t *testing.T) {
	g := geom.NewPolygon(
		[][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		[][2]float64{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	)
	poly := liftPolygon(g)
	if len(poly) != 2 {
		t.Fatalf("got %d rings, want 2 (outer + 1 hole)", len(poly))
	}
	if len(poly[0]) != 5 {
		t.Errorf("outer ring has %d points, want 5", len(poly[0]))
	}
}
