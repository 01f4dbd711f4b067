// Package mvtcodec encodes and decodes the subset of the Mapbox Vector
// Tile wire format needed to round-trip internal/geom's feature model:
// one layer at a time, with integer geometry commands, an interned
// key/value attribute dictionary, and gzip left to the caller (spec.md
// §1 names "the vector-tile binary encoding" and "gzip framing of the
// wire payload" as external collaborators; this package is that
// collaborator's concrete body, plus pkg/server/gzip.go for framing).
package mvtcodec

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tileforge/vtpost/internal/geom"
)

// Field numbers from the Mapbox Vector Tile spec (version 2).
const (
	fieldLayerVersion = 15
	fieldLayerName    = 1
	fieldLayerFeature = 2
	fieldLayerKey     = 3
	fieldLayerValue   = 4
	fieldLayerExtent  = 5

	fieldFeatureID   = 1
	fieldFeatureTags = 2
	fieldFeatureType = 3
	fieldFeatureGeom = 4

	fieldValueString = 1
	fieldValueFloat  = 2
	fieldValueDouble = 3
	fieldValueInt    = 4
	fieldValueUint   = 5
	fieldValueSint   = 6
	fieldValueBool   = 7
)

// Geometry command ids packed into MVT's command integers.
const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

// DefaultExtent is the MVT spec's default tile coordinate extent.
const DefaultExtent = 4096

// EncodeLayer serializes layer as an MVT Tile.Layer message at the given
// extent (the coordinate space features are assumed to already live in;
// internal/geom performs no reprojection of its own).
func EncodeLayer(layer *geom.Layer, extent uint32) []byte {
	enc := &encoder{extent: extent}
	return enc.encode(layer)
}

type encoder struct {
	extent uint32
	keys   []string
	keyIdx map[string]uint32
	values []geom.Value
	valIdx map[string]uint32 // keyed by String() rendering, adequate for interning
}

func (e *encoder) encode(layer *geom.Layer) []byte {
	e.keyIdx = make(map[string]uint32)
	e.valIdx = make(map[string]uint32)

	var featureBufs [][]byte
	for _, f := range layer.Features() {
		featureBufs = append(featureBufs, e.encodeFeature(f))
	}

	var buf []byte
	buf = protowire.AppendTag(buf, fieldLayerVersion, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 2)
	buf = protowire.AppendTag(buf, fieldLayerName, protowire.BytesType)
	buf = protowire.AppendString(buf, layer.Name)

	for _, fb := range featureBufs {
		buf = protowire.AppendTag(buf, fieldLayerFeature, protowire.BytesType)
		buf = protowire.AppendBytes(buf, fb)
	}
	for _, k := range e.keys {
		buf = protowire.AppendTag(buf, fieldLayerKey, protowire.BytesType)
		buf = protowire.AppendString(buf, k)
	}
	for _, v := range e.values {
		buf = protowire.AppendTag(buf, fieldLayerValue, protowire.BytesType)
		buf = protowire.AppendBytes(buf, encodeValue(v))
	}

	buf = protowire.AppendTag(buf, fieldLayerExtent, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(e.extent))
	return buf
}

func (e *encoder) internKey(k string) uint32 {
	if idx, ok := e.keyIdx[k]; ok {
		return idx
	}
	idx := uint32(len(e.keys))
	e.keys = append(e.keys, k)
	e.keyIdx[k] = idx
	return idx
}

func (e *encoder) internValue(v geom.Value) uint32 {
	k := v.String() + "|" + fmt.Sprint(v.Kind())
	if idx, ok := e.valIdx[k]; ok {
		return idx
	}
	idx := uint32(len(e.values))
	e.values = append(e.values, v)
	e.valIdx[k] = idx
	return idx
}

func (e *encoder) encodeFeature(f *geom.Feature) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldFeatureID, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(f.ID))

	var tags []uint64
	f.Entries(func(key string, v geom.Value) {
		if v.IsNull() {
			return
		}
		tags = append(tags, uint64(e.internKey(key)), uint64(e.internValue(v)))
	})
	if len(tags) > 0 {
		buf = protowire.AppendTag(buf, fieldFeatureTags, protowire.BytesType)
		buf = protowire.AppendBytes(buf, encodePackedVarints(tags))
	}

	geoms := f.Geometries()
	if len(geoms) > 0 {
		buf = protowire.AppendTag(buf, fieldFeatureType, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(geomType(geoms[0].Type())))

		var commands []uint32
		for _, g := range geoms {
			commands = append(commands, encodeGeometryCommands(g)...)
		}
		buf = protowire.AppendTag(buf, fieldFeatureGeom, protowire.BytesType)
		buf = protowire.AppendBytes(buf, encodePackedVarints32(commands))
	}
	return buf
}

func geomType(t geom.Type) int {
	switch t {
	case geom.Point:
		return 1
	case geom.LineString:
		return 2
	case geom.Polygon:
		return 3
	default:
		return 0
	}
}

// encodeGeometryCommands flattens one geometry into the MVT command/parameter
// integer stream: a MoveTo to the first vertex of each ring, LineTo for the
// rest, and a ClosePath for polygon rings (whose explicit closing vertex,
// present in internal/geom's model, is dropped in favor of ClosePath).
func encodeGeometryCommands(g geom.Geometry) []uint32 {
	var out []uint32
	cx, cy := int32(0), int32(0)

	emitRing := func(ring [][2]float64, closed bool) {
		if len(ring) == 0 {
			return
		}
		out = append(out, commandInteger(cmdMoveTo, 1))
		out = append(out, zigzagDelta(ring[0][0], &cx), zigzagDelta(ring[0][1], &cy))

		lineCount := len(ring) - 1
		if closed {
			lineCount-- // drop the duplicated closing vertex
		}
		if lineCount > 0 {
			out = append(out, commandInteger(cmdLineTo, uint32(lineCount)))
			for i := 1; i <= lineCount; i++ {
				out = append(out, zigzagDelta(ring[i][0], &cx), zigzagDelta(ring[i][1], &cy))
			}
		}
		if closed {
			out = append(out, commandInteger(cmdClosePath, 1))
		}
	}

	outer := ringCoords(g)
	emitRing(outer, g.Type() == geom.Polygon)
	for _, ring := range g.Rings() {
		emitRing(vertexCoords(ring), true)
	}
	return out
}

func ringCoords(g geom.Geometry) [][2]float64 {
	coords := make([][2]float64, g.NumVertices())
	for i := range coords {
		x, y := g.VertexAt(i)
		coords[i] = [2]float64{x, y}
	}
	return coords
}

func vertexCoords(ring []geom.Vertex) [][2]float64 {
	coords := make([][2]float64, len(ring))
	for i, v := range ring {
		coords[i] = [2]float64{v.X, v.Y}
	}
	return coords
}

func commandInteger(id, count uint32) uint32 { return (id & 0x7) | (count << 3) }

func zigzagDelta(v float64, cursor *int32) uint32 {
	iv := int32(v)
	delta := iv - *cursor
	*cursor = iv
	return uint32(protowire.EncodeZigZag(int64(delta)))
}

func encodePackedVarints(vals []uint64) []byte {
	var buf []byte
	for _, v := range vals {
		buf = protowire.AppendVarint(buf, v)
	}
	return buf
}

func encodePackedVarints32(vals []uint32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = protowire.AppendVarint(buf, uint64(v))
	}
	return buf
}

func encodeValue(v geom.Value) []byte {
	var buf []byte
	switch v.Kind() {
	case geom.KindString:
		s, _ := v.Str()
		buf = protowire.AppendTag(buf, fieldValueString, protowire.BytesType)
		buf = protowire.AppendString(buf, s)
	case geom.KindFloat:
		f, _ := v.Float64()
		buf = protowire.AppendTag(buf, fieldValueDouble, protowire.Fixed64Type)
		buf = protowire.AppendFixed64(buf, math.Float64bits(f))
	case geom.KindInt:
		i, _ := v.Int64()
		buf = protowire.AppendTag(buf, fieldValueSint, protowire.VarintType)
		buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(i))
	case geom.KindBool:
		b, _ := v.BoolValue()
		buf = protowire.AppendTag(buf, fieldValueBool, protowire.VarintType)
		if b {
			buf = protowire.AppendVarint(buf, 1)
		} else {
			buf = protowire.AppendVarint(buf, 0)
		}
	}
	return buf
}
