package mvtcodec

import (
	"testing"

	"github.com/tileforge/vtpost/internal/geom"
)

func TestEncodeDecodeLineStringRoundTrip(t *testing.T) {
	layer := geom.NewLayer("roads")
	f := geom.NewFeature(7)
	f.AddGeometry(geom.NewLineString([][2]float64{{0, 0}, {10, 0}, {10, 10}}))
	f.Put("road", geom.String("main"))
	f.Put("lanes", geom.Int(2))
	layer.AddFeature(f)

	encoded := EncodeLayer(layer, DefaultExtent)
	decoded, err := DecodeLayer(encoded)
	if err != nil {
		t.Fatalf("DecodeLayer() error = %v", err)
	}

	if decoded.Name != "roads" {
		t.Errorf("Name = %q, want roads", decoded.Name)
	}
	if decoded.Len() != 1 {
		t.Fatalf("got %d features, want 1", decoded.Len())
	}
	got := decoded.Features()[0]
	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
	v, ok := got.Get("road")
	if !ok {
		t.Fatal("missing road attribute")
	}
	if s, _ := v.Str(); s != "main" {
		t.Errorf("road = %q, want main", s)
	}
	lanes, _ := got.Get("lanes")
	if n, _ := lanes.Int64(); n != 2 {
		t.Errorf("lanes = %d, want 2", n)
	}

	g := got.Geometries()[0]
	if g.Type() != geom.LineString {
		t.Fatalf("Type() = %v, want LineString", g.Type())
	}
	if g.NumVertices() != 3 {
		t.Fatalf("got %d vertices, want 3", g.NumVertices())
	}
	wantCoords := [][2]float64{{0, 0}, {10, 0}, {10, 10}}
	for i, want := range wantCoords {
		x, y := g.VertexAt(i)
		if x != want[0] || y != want[1] {
			t.Errorf("vertex %d = (%v, %v), want (%v, %v)", i, x, y, want[0], want[1])
		}
	}
}

func TestEncodeDecodePolygonRoundTrip(t *testing.T) {
	layer := geom.NewLayer("boundaries")
	f := geom.NewFeature(1)
	f.AddGeometry(geom.NewPolygon([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}))
	layer.AddFeature(f)

	encoded := EncodeLayer(layer, DefaultExtent)
	decoded, err := DecodeLayer(encoded)
	if err != nil {
		t.Fatalf("DecodeLayer() error = %v", err)
	}

	got := decoded.Features()[0].Geometries()[0]
	if got.Type() != geom.Polygon {
		t.Fatalf("Type() = %v, want Polygon", got.Type())
	}
	if got.NumVertices() != 5 {
		t.Errorf("got %d vertices, want 5 (ring re-closed)", got.NumVertices())
	}
}

func TestEncodeDecodePointRoundTrip(t *testing.T) {
	layer := geom.NewLayer("pois")
	f := geom.NewFeature(42)
	f.AddGeometry(geom.NewPoint(3, 4))
	f.Put("open", geom.Bool(true))
	layer.AddFeature(f)

	encoded := EncodeLayer(layer, DefaultExtent)
	decoded, err := DecodeLayer(encoded)
	if err != nil {
		t.Fatalf("DecodeLayer() error = %v", err)
	}
	got := decoded.Features()[0]
	x, y := got.Geometries()[0].VertexAt(0)
	if x != 3 || y != 4 {
		t.Errorf("point = (%v, %v), want (3, 4)", x, y)
	}
	v, _ := got.Get("open")
	if b, _ := v.BoolValue(); !b {
		t.Error("open = false, want true")
	}
}
