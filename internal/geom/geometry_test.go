package geom

import "testing"

func TestLineStringMoveToThenLineTo(t *testing.T) {
	g := NewLineString([][2]float64{{0, 0}, {1, 0}, {2, 0}})

	var cmds []Cmd
	g.Iterate(func(v Vertex) bool {
		cmds = append(cmds, v.Cmd)
		return true
	})

	want := []Cmd{MoveTo, LineTo, LineTo, End}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, c := range want {
		if cmds[i] != c {
			t.Errorf("cmd[%d] = %v, want %v", i, cmds[i], c)
		}
	}
}

func TestAppendVerticesExtendsOuterRing(t *testing.T) {
	g := NewLineString([][2]float64{{0, 0}, {1, 0}})
	g = g.AppendVertices([][2]float64{{2, 0}, {3, 0}})

	if g.NumVertices() != 4 {
		t.Fatalf("got %d vertices, want 4", g.NumVertices())
	}
	x, y := g.Back()
	if x != 3 || y != 0 {
		t.Errorf("back = (%v, %v), want (3, 0)", x, y)
	}
}

func TestReversedLineStringKeepsMoveToFirst(t *testing.T) {
	g := NewLineString([][2]float64{{0, 0}, {1, 0}, {2, 0}})
	r := g.ReversedLineString()

	x, y := r.Front()
	if x != 2 || y != 0 {
		t.Errorf("front = (%v, %v), want (2, 0)", x, y)
	}
	x, y = r.Back()
	if x != 0 || y != 0 {
		t.Errorf("back = (%v, %v), want (0, 0)", x, y)
	}

	var first Cmd
	r.Iterate(func(v Vertex) bool {
		first = v.Cmd
		return false
	})
	if first != MoveTo {
		t.Errorf("first command = %v, want MoveTo", first)
	}
}

func TestEnvelopeUnionsRings(t *testing.T) {
	poly := NewPolygon(
		[][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		[][2]float64{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	)
	env := poly.Envelope()
	if env.MinX != 0 || env.MinY != 0 || env.MaxX != 10 || env.MaxY != 10 {
		t.Errorf("envelope = %+v, want {0 0 10 10}", env)
	}
}

func TestFeatureCullingOnEmptyGeometry(t *testing.T) {
	layer := NewLayer("roads")
	f := NewFeature(1)
	f.AddGeometry(NewLineString([][2]float64{{0, 0}, {1, 0}}))
	layer.AddFeature(f)

	f.RemoveGeometry(0)
	layer.CullEmpty()

	if layer.Len() != 0 {
		t.Errorf("layer.Len() = %d, want 0 after culling", layer.Len())
	}
}

func TestAttributeNullIsDeletionMarker(t *testing.T) {
	f := NewFeature(1)
	f.Put("ref", String("A1"))
	f.SetNull("ref")

	v, ok := f.Get("ref")
	if !ok {
		t.Fatal("expected ref key to still be present after SetNull")
	}
	if !v.IsNull() {
		t.Errorf("expected null value, got %v", v)
	}
}

func TestValueLessOrdersByKindThenPayload(t *testing.T) {
	if !Int(1).Less(Float(0)) {
		t.Error("Int should sort before Float regardless of payload")
	}
	if !String("a").Less(String("b")) {
		t.Error("String(a) should sort before String(b)")
	}
}
