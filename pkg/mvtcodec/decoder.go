package mvtcodec

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tileforge/vtpost/internal/geom"
)

// ErrMalformedTile reports a Tile.Layer message that could not be parsed,
// one wire-field error per occurrence rather than a single catch-all, to
// match the per-record error style of the teacher's parser.
type ErrMalformedTile struct {
	Field string
	Err   error
}

func (e *ErrMalformedTile) Error() string {
	return fmt.Sprintf("mvtcodec: malformed %s: %v", e.Field, e.Err)
}

func (e *ErrMalformedTile) Unwrap() error { return e.Err }

type rawFeature struct {
	id       uint64
	tags     []uint64
	geomType uint64
	commands []uint32
}

// DecodeLayer parses an MVT Tile.Layer message back into a geom.Layer.
func DecodeLayer(data []byte) (*geom.Layer, error) {
	var name string
	var keys []string
	var values []geom.Value
	var rawFeatures []rawFeature

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, &ErrMalformedTile{Field: "tag", Err: protowire.ParseError(n)}
		}
		data = data[n:]

		switch num {
		case fieldLayerName:
			v, n, err := consumeString(data, typ)
			if err != nil {
				return nil, &ErrMalformedTile{Field: "name", Err: err}
			}
			name, data = v, data[n:]
		case fieldLayerFeature:
			v, n, err := consumeBytes(data, typ)
			if err != nil {
				return nil, &ErrMalformedTile{Field: "feature", Err: err}
			}
			rf, err := decodeRawFeature(v)
			if err != nil {
				return nil, err
			}
			rawFeatures = append(rawFeatures, rf)
			data = data[n:]
		case fieldLayerKey:
			v, n, err := consumeString(data, typ)
			if err != nil {
				return nil, &ErrMalformedTile{Field: "key", Err: err}
			}
			keys = append(keys, v)
			data = data[n:]
		case fieldLayerValue:
			v, n, err := consumeBytes(data, typ)
			if err != nil {
				return nil, &ErrMalformedTile{Field: "value", Err: err}
			}
			val, err := decodeValue(v)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
			data = data[n:]
		default:
			n, err := skipField(data, typ)
			if err != nil {
				return nil, &ErrMalformedTile{Field: "unknown", Err: err}
			}
			data = data[n:]
		}
	}

	layer := geom.NewLayer(name)
	for _, rf := range rawFeatures {
		f, err := buildFeature(rf, keys, values)
		if err != nil {
			return nil, err
		}
		layer.AddFeature(f)
	}
	return layer, nil
}

func decodeRawFeature(data []byte) (rawFeature, error) {
	var rf rawFeature
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return rf, &ErrMalformedTile{Field: "feature.tag", Err: protowire.ParseError(n)}
		}
		data = data[n:]

		switch num {
		case fieldFeatureID:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return rf, &ErrMalformedTile{Field: "feature.id", Err: protowire.ParseError(n)}
			}
			rf.id, data = v, data[n:]
		case fieldFeatureTags:
			v, n, err := consumeBytes(data, typ)
			if err != nil {
				return rf, &ErrMalformedTile{Field: "feature.tags", Err: err}
			}
			packed, err := decodePackedVarints(v)
			if err != nil {
				return rf, err
			}
			rf.tags, data = packed, data[n:]
		case fieldFeatureType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return rf, &ErrMalformedTile{Field: "feature.type", Err: protowire.ParseError(n)}
			}
			rf.geomType, data = v, data[n:]
		case fieldFeatureGeom:
			v, n, err := consumeBytes(data, typ)
			if err != nil {
				return rf, &ErrMalformedTile{Field: "feature.geometry", Err: err}
			}
			packed, err := decodePackedVarints(v)
			if err != nil {
				return rf, err
			}
			rf.commands = make([]uint32, len(packed))
			for i, p := range packed {
				rf.commands[i] = uint32(p)
			}
			data = data[n:]
		default:
			n, err := skipField(data, typ)
			if err != nil {
				return rf, &ErrMalformedTile{Field: "feature.unknown", Err: err}
			}
			data = data[n:]
		}
	}
	return rf, nil
}

func buildFeature(rf rawFeature, keys []string, values []geom.Value) (*geom.Feature, error) {
	f := geom.NewFeature(int64(rf.id))
	for i := 0; i+1 < len(rf.tags); i += 2 {
		k, v := rf.tags[i], rf.tags[i+1]
		if int(k) >= len(keys) || int(v) >= len(values) {
			return nil, &ErrMalformedTile{Field: "feature.tags", Err: fmt.Errorf("tag index out of range")}
		}
		f.Put(keys[k], values[v])
	}

	for _, g := range decodeGeometryCommands(rf.commands, geomTypeFromWire(rf.geomType)) {
		f.AddGeometry(g)
	}
	return f, nil
}

func geomTypeFromWire(v uint64) geom.Type {
	switch v {
	case 1:
		return geom.Point
	case 2:
		return geom.LineString
	default:
		return geom.Polygon
	}
}

// decodeGeometryCommands rebuilds geometries from the MVT command stream. A
// Point feature type yields one geom.Point per MoveTo; LineString yields one
// geom.LineString per MoveTo run; Polygon yields one geom.Polygon per outer
// ring, grouped by winding order in groupPolygonRings, with each ClosePath
// re-closing its ring's last vertex to match internal/geom's closed-ring
// convention.
func decodeGeometryCommands(cmds []uint32, kind geom.Type) []geom.Geometry {
	var out []geom.Geometry
	var rings [][][2]float64
	var cur [][2]float64
	cx, cy := int32(0), int32(0)

	i := 0
	for i < len(cmds) {
		id := cmds[i] & 0x7
		count := cmds[i] >> 3
		i++
		switch id {
		case cmdMoveTo:
			if len(cur) > 0 {
				rings = append(rings, cur)
			}
			cur = nil
			for c := uint32(0); c < count; c++ {
				if i+1 >= len(cmds) {
					break
				}
				dx := protowire.DecodeZigZag(uint64(cmds[i]))
				dy := protowire.DecodeZigZag(uint64(cmds[i+1]))
				cx += int32(dx)
				cy += int32(dy)
				cur = append(cur, [2]float64{float64(cx), float64(cy)})
				i += 2
				if kind == geom.Point {
					rings = append(rings, cur)
					cur = nil
				}
			}
		case cmdLineTo:
			for c := uint32(0); c < count; c++ {
				if i+1 >= len(cmds) {
					break
				}
				dx := protowire.DecodeZigZag(uint64(cmds[i]))
				dy := protowire.DecodeZigZag(uint64(cmds[i+1]))
				cx += int32(dx)
				cy += int32(dy)
				cur = append(cur, [2]float64{float64(cx), float64(cy)})
				i += 2
			}
		case cmdClosePath:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
		}
	}
	if len(cur) > 0 {
		rings = append(rings, cur)
	}

	switch kind {
	case geom.Point:
		for _, r := range rings {
			if len(r) > 0 {
				out = append(out, geom.NewPoint(r[0][0], r[0][1]))
			}
		}
	case geom.LineString:
		for _, r := range rings {
			out = append(out, geom.NewLineString(r))
		}
	case geom.Polygon:
		out = append(out, groupPolygonRings(rings)...)
	}
	return out
}

// groupPolygonRings splits a MultiPolygon's flat ring sequence back into
// one geometry per outer ring, using winding order to tell an outer ring
// (clockwise, positive shoelace sum) from a hole (counter-clockwise) the
// way the MVT spec defines it. A feature with a single polygon and no
// holes is the common case and degenerates to one outer ring with no
// inner rings that follow it.
func groupPolygonRings(rings [][][2]float64) []geom.Geometry {
	var out []geom.Geometry
	var outer [][2]float64
	var holes [][][2]float64

	flush := func() {
		if outer != nil {
			out = append(out, geom.NewPolygon(outer, holes...))
		}
	}

	for _, r := range rings {
		if signedArea(r) > 0 {
			flush()
			outer, holes = r, nil
		} else {
			holes = append(holes, r)
		}
	}
	flush()
	return out
}

func signedArea(ring [][2]float64) float64 {
	var sum float64
	for i := 0; i < len(ring); i++ {
		j := (i + 1) % len(ring)
		sum += ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
	}
	return sum
}

func consumeString(data []byte, _ protowire.Type) (string, int, error) {
	v, n := protowire.ConsumeString(data)
	if n < 0 {
		return "", 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(data []byte, _ protowire.Type) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func skipField(data []byte, typ protowire.Type) (int, error) {
	n := protowire.ConsumeFieldValue(0, typ, data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

func decodePackedVarints(data []byte) ([]uint64, error) {
	var out []uint64
	for len(data) > 0 {
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, v)
		data = data[n:]
	}
	return out, nil
}

func decodeValue(data []byte) (geom.Value, error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return geom.Value{}, &ErrMalformedTile{Field: "value.tag", Err: protowire.ParseError(n)}
		}
		data = data[n:]

		switch num {
		case fieldValueString:
			v, _, err := consumeString(data, typ)
			if err != nil {
				return geom.Value{}, &ErrMalformedTile{Field: "value.string", Err: err}
			}
			return geom.String(v), nil
		case fieldValueDouble:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return geom.Value{}, &ErrMalformedTile{Field: "value.double", Err: protowire.ParseError(n)}
			}
			return geom.Float(math.Float64frombits(v)), nil
		case fieldValueSint:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return geom.Value{}, &ErrMalformedTile{Field: "value.sint", Err: protowire.ParseError(n)}
			}
			return geom.Int(protowire.DecodeZigZag(v)), nil
		case fieldValueBool:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return geom.Value{}, &ErrMalformedTile{Field: "value.bool", Err: protowire.ParseError(n)}
			}
			return geom.Bool(v != 0), nil
		default:
			skip, err := skipField(data, typ)
			if err != nil {
				return geom.Value{}, err
			}
			data = data[skip:]
			continue
		}
	}
	return geom.Null(), nil
}
