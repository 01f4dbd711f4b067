package datasource

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/lib/pq"

	"github.com/tileforge/vtpost/internal/geom"
)

// wkbPolygon and wkbMultiPolygon are the WKB geometry type codes this
// reader understands (in either byte order); anything else is skipped rather than
// failing the whole query (spec.md §7: "geometry-shape mismatches are
// treated by skipping the geometry").
const (
	wkbPolygon      = 3
	wkbMultiPolygon = 6
)

// Postgis is a lib/pq-backed Source querying a single polygon table by
// bounding box. It is safe to share across Process calls: each Query opens
// its own *sql.Rows and returns a freshly built feature slice.
type Postgis struct {
	db         *sql.DB
	table      string
	geomColumn string
	idColumn   string
	attrColumn string // attribute copied onto the returned feature, keyed by the same name
}

// PostgisConfig configures a Postgis datasource from the `datasource`
// property-tree subtree (spec.md §6).
type PostgisConfig struct {
	ConnString string
	Table      string
	GeomColumn string
	IDColumn   string
	AttrColumn string
}

// NewPostgis opens a connection pool and validates it with a ping,
// surfacing any failure as a construction-time DatasourceError (spec.md
// §7).
func NewPostgis(cfg PostgisConfig) (*Postgis, error) {
	db, err := sql.Open("postgres", cfg.ConnString)
	if err != nil {
		return nil, &ConstructError{Kind: "postgis", Err: err}
	}
	if err := db.Ping(); err != nil {
		return nil, &ConstructError{Kind: "postgis", Err: err}
	}
	return &Postgis{
		db:         db,
		table:      cfg.Table,
		geomColumn: cfg.GeomColumn,
		idColumn:   cfg.IDColumn,
		attrColumn: cfg.AttrColumn,
	}, nil
}

// Query fetches rows whose geometry's bounding box intersects env and
// decodes each row's EWKB polygon/multipolygon geometry into geom.Geometry.
func (p *Postgis) Query(env geom.Envelope) ([]*geom.Feature, error) {
	query := fmt.Sprintf(
		`SELECT %s, %s, ST_AsBinary(%s) FROM %s WHERE %s && ST_MakeEnvelope($1, $2, $3, $4, 4326)`,
		p.idColumn, p.attrColumn, p.geomColumn, p.table, p.geomColumn,
	)
	rows, err := p.db.Query(query, env.MinX, env.MinY, env.MaxX, env.MaxY)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*geom.Feature
	for rows.Next() {
		var id int64
		var attrValue string
		var wkb []byte
		if err := rows.Scan(&id, &attrValue, &wkb); err != nil {
			return nil, err
		}

		f := geom.NewFeature(id)
		f.Put(p.attrColumn, geom.String(attrValue))
		for _, g := range decodeEWKBPolygons(wkb) {
			f.AddGeometry(g)
		}
		if f.GeometryCount() > 0 {
			features = append(features, f)
		}
	}
	return features, rows.Err()
}

// decodeEWKBPolygons decodes a well-known-binary Polygon or MultiPolygon
// into one or more geom.Geometry polygons. Malformed or unsupported input
// yields no geometries rather than an error, matching the "skip rather
// than fail" policy for shape mismatches (spec.md §7).
func decodeEWKBPolygons(wkb []byte) []geom.Geometry {
	if len(wkb) < 5 {
		return nil
	}
	var order binary.ByteOrder = binary.LittleEndian
	if wkb[0] == 0 {
		order = binary.BigEndian
	}
	geomType := order.Uint32(wkb[1:5])

	switch geomType {
	case wkbPolygon:
		g, _, ok := readPolygon(wkb[5:], order)
		if !ok {
			return nil
		}
		return []geom.Geometry{g}
	case wkbMultiPolygon:
		if len(wkb) < 9 {
			return nil
		}
		count := order.Uint32(wkb[5:9])
		rest := wkb[9:]
		var out []geom.Geometry
		for i := uint32(0); i < count; i++ {
			if len(rest) < 5 {
				break
			}
			rest = rest[5:] // each sub-geometry repeats byte order + type
			g, n, ok := readPolygon(rest, order)
			if !ok {
				break
			}
			out = append(out, g)
			rest = rest[n:]
		}
		return out
	default:
		return nil
	}
}

// readPolygon parses the ring-count-prefixed body of a WKB Polygon,
// returning the decoded geometry and the number of bytes consumed.
func readPolygon(data []byte, order binary.ByteOrder) (geom.Geometry, int, bool) {
	if len(data) < 4 {
		return geom.Geometry{}, 0, false
	}
	numRings := order.Uint32(data[0:4])
	offset := 4

	var rings [][][2]float64
	for r := uint32(0); r < numRings; r++ {
		if len(data) < offset+4 {
			return geom.Geometry{}, 0, false
		}
		numPoints := order.Uint32(data[offset : offset+4])
		offset += 4

		ring := make([][2]float64, numPoints)
		for i := uint32(0); i < numPoints; i++ {
			if len(data) < offset+16 {
				return geom.Geometry{}, 0, false
			}
			x := math.Float64frombits(order.Uint64(data[offset : offset+8]))
			y := math.Float64frombits(order.Uint64(data[offset+8 : offset+16]))
			ring[i] = [2]float64{x, y}
			offset += 16
		}
		rings = append(rings, ring)
	}

	if len(rings) == 0 {
		return geom.Geometry{}, 0, false
	}
	g := geom.NewPolygon(rings[0], rings[1:]...)
	return g, offset, true
}

// Close releases the underlying connection pool.
func (p *Postgis) Close() error { return p.db.Close() }
