package admin

import (
	"fmt"
	"math"

	"github.com/tileforge/vtpost/internal/geom"
)

// ErrMissingParamName reports a Config with no param_name, a construction
// time ConfigError (spec.md §7).
type ErrMissingParamName struct{}

func (e *ErrMissingParamName) Error() string { return "adminizer: param_name is required" }

// DatasourceError wraps a failure from the auxiliary datasource, surfaced
// either at construction (factory) or at the first Process call (query).
type DatasourceError struct {
	Op  string
	Err error
}

func (e *DatasourceError) Error() string {
	return fmt.Sprintf("adminizer datasource %s: %v", e.Op, e.Err)
}

func (e *DatasourceError) Unwrap() error { return e.Err }

// AuxiliaryDatasource is the boundary contract spec.md §6 names: something
// that can return a featureset intersecting a query envelope. Concrete
// implementations live in internal/datasource.
type AuxiliaryDatasource interface {
	Query(env geom.Envelope) ([]*geom.Feature, error)
}

// Config holds the adminizer's settings (spec.md §6).
type Config struct {
	ParamName  string
	Datasource AuxiliaryDatasource
}

// Adminizer stamps each feature with an attribute taken from the
// lowest-indexed auxiliary polygon it intersects (spec.md §4.6).
type Adminizer struct {
	cfg Config
}

// New constructs an Adminizer, validating cfg per spec.md §7.
func New(cfg Config) (*Adminizer, error) {
	if cfg.ParamName == "" {
		return nil, &ErrMissingParamName{}
	}
	return &Adminizer{cfg: cfg}, nil
}

// Process runs the spatial enrichment described in spec.md §4.6 over layer.
func (a *Adminizer) Process(layer *geom.Layer) error {
	env := layer.Envelope()
	if !env.Valid() {
		return nil
	}

	auxFeatures, err := a.cfg.Datasource.Query(env)
	if err != nil {
		return &DatasourceError{Op: "query", Err: err}
	}

	entries := buildEntries(auxFeatures, a.cfg.ParamName)
	index := BuildSpatialIndex(entries)

	for _, f := range layer.Features() {
		a.processFeature(f, index)
	}
	return nil
}

func buildEntries(features []*geom.Feature, paramName string) []Entry {
	var entries []Entry
	next := 0
	for _, f := range features {
		value, _ := f.Get(paramName)
		for _, g := range f.Geometries() {
			if g.Type() != geom.Polygon {
				continue
			}
			entries = append(entries, NewEntry(liftPolygon(g), value, next))
			next++
		}
	}
	return entries
}

// updater holds per-feature state: the smallest entry index seen so far and
// whether index 0 has already been hit (spec.md §3, §4.6).
type updater struct {
	feature   *geom.Feature
	paramName string
	bestIndex int
	finished  bool
}

func newUpdater(f *geom.Feature, paramName string) *updater {
	return &updater{feature: f, paramName: paramName, bestIndex: math.MaxInt}
}

func (u *updater) visit(e Entry) {
	if e.Index >= u.bestIndex {
		return
	}
	u.feature.Put(u.paramName, e.ParamValue)
	u.bestIndex = e.Index
	if e.Index == 0 {
		u.finished = true
	}
}

func (a *Adminizer) processFeature(f *geom.Feature, index *SpatialIndex) {
	u := newUpdater(f, a.cfg.ParamName)

	for _, g := range f.Geometries() {
		if u.finished {
			return
		}
		switch g.Type() {
		case geom.Point:
			p := liftPoint(g)
			for _, e := range index.Query(g.Envelope()) {
				if pointInPolygon(p, e.Polygon) {
					u.visit(e)
				}
			}
		case geom.LineString:
			ls := liftLineString(g)
			for _, e := range index.Query(g.Envelope()) {
				if lineStringIntersectsPolygon(ls, e.Polygon) {
					u.visit(e)
				}
			}
		case geom.Polygon:
			poly := liftPolygon(g)
			for _, e := range index.Query(g.Envelope()) {
				if polygonIntersectsPolygon(poly, e.Polygon) {
					u.visit(e)
				}
			}
		}
	}
}
