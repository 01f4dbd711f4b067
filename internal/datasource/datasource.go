// Package datasource implements the "auxiliary polygon datasource"
// collaborator spec.md §6/§7 names as a boundary contract: something that
// returns a featureset for a query envelope, opened once and safe for
// concurrent reads across Process calls (spec.md §5).
package datasource

import (
	"fmt"

	"github.com/tileforge/vtpost/internal/geom"
)

// Source matches internal/admin.AuxiliaryDatasource structurally; admin
// depends on its own narrower interface rather than importing this
// package, so implementations here need no import of internal/admin.
type Source interface {
	Query(env geom.Envelope) ([]*geom.Feature, error)
}

// ConstructError reports a failure opening a datasource, a construction
// time DatasourceError (spec.md §7).
type ConstructError struct {
	Kind string
	Err  error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("datasource %s: construct: %v", e.Kind, e.Err)
}

func (e *ConstructError) Unwrap() error { return e.Err }

// Params is the opaque key-value subtree spec.md §6 calls `datasource`,
// handed to a factory to build a concrete Source.
type Params map[string]string

func (p Params) or(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// New builds a Source of the given kind from an opaque Params map, the
// construction path cmd/vtpostd drives from a parsed configuration tree.
func New(kind string, params Params) (Source, error) {
	switch kind {
	case "postgis":
		return NewPostgis(PostgisConfig{
			ConnString: params.or("conn_string", ""),
			Table:      params.or("table", ""),
			GeomColumn: params.or("geom_column", "geom"),
			IDColumn:   params.or("id_column", "id"),
			AttrColumn: params.or("attr_column", "name"),
		})
	case "memory", "":
		return NewMemory(nil), nil
	default:
		return nil, &ConstructError{Kind: kind, Err: fmt.Errorf("unknown datasource kind %q", kind)}
	}
}
