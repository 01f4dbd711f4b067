package datasource

import (
	"encoding/binary"
	"math"
	"testing"
)

func littleEndianPolygon(rings [][][2]float64) []byte {
	buf := []byte{1} // little-endian marker
	buf = binary.LittleEndian.AppendUint32(buf, wkbPolygon)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(rings)))
	for _, ring := range rings {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ring)))
		for _, pt := range ring {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(pt[0]))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(pt[1]))
		}
	}
	return buf
}

func TestDecodeEWKBPolygonSingleRing(t *testing.T) {
	wkb := littleEndianPolygon([][][2]float64{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
	})
	geoms := decodeEWKBPolygons(wkb)
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
}

func TestDecodeEWKBPolygonWithHole(t *testing.T) {
	wkb := littleEndianPolygon([][][2]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}},
	})
	geoms := decodeEWKBPolygons(wkb)
	if len(geoms) != 1 {
		t.Fatalf("got %d geometries, want 1", len(geoms))
	}
}

func TestDecodeEWKBTruncatedInputYieldsNoGeometry(t *testing.T) {
	wkb := littleEndianPolygon([][][2]float64{{{0, 0}, {1, 0}, {1, 1}}})
	wkb = wkb[:len(wkb)-10]
	geoms := decodeEWKBPolygons(wkb)
	if geoms != nil {
		t.Errorf("got %d geometries from truncated input, want none", len(geoms))
	}
}

func TestDecodeEWKBUnsupportedTypeYieldsNoGeometry(t *testing.T) {
	buf := []byte{1}
	buf = binary.LittleEndian.AppendUint32(buf, 1) // Point, unsupported here
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(1.0))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(2.0))
	if geoms := decodeEWKBPolygons(buf); geoms != nil {
		t.Errorf("got geometries for unsupported type, want none")
	}
}
