// Package vtpost is the public entry point for the unionizer and adminizer
// processors: it turns string-keyed property-tree configuration into the
// typed configs internal/union and internal/admin expect, and exposes both
// behind the single `process(layer, map_context)` shape spec.md §3 gives
// every processor, so callers can compose them into a pipeline in whatever
// order they choose.
package vtpost

import (
	"github.com/tileforge/vtpost/internal/admin"
	"github.com/tileforge/vtpost/internal/config"
	"github.com/tileforge/vtpost/internal/geom"
	"github.com/tileforge/vtpost/internal/tilecoord"
	"github.com/tileforge/vtpost/internal/union"
)

// Processor mutates a layer in place, given the map context describing the
// tile it belongs to. Processors are re-entrant across disjoint layers.
type Processor interface {
	Process(layer *geom.Layer, mapCtx tilecoord.MapContext) error
}

// unionProcessor adapts *union.Unionizer to Processor; Unionizer.Process
// never fails once constructed, so it always returns a nil error.
type unionProcessor struct {
	u *union.Unionizer
}

func (p *unionProcessor) Process(layer *geom.Layer, mapCtx tilecoord.MapContext) error {
	p.u.Process(layer, mapCtx)
	return nil
}

// NewUnionizer builds a linestring-merging Processor from a property tree
// rooted at the processor's own configuration (spec.md §6), returning a
// ConfigError if any key is malformed.
func NewUnionizer(tree config.Tree) (Processor, error) {
	cfg, err := parseUnionConfig(tree)
	if err != nil {
		return nil, err
	}
	u, err := union.New(cfg)
	if err != nil {
		return nil, &ConfigError{Key: "union", Err: err}
	}
	return &unionProcessor{u: u}, nil
}

// adminProcessor adapts *admin.Adminizer to Processor, ignoring mapCtx: the
// spatial enrichment it performs is independent of the tile's map context.
type adminProcessor struct {
	a *admin.Adminizer
}

func (p *adminProcessor) Process(layer *geom.Layer, _ tilecoord.MapContext) error {
	return p.a.Process(layer)
}

// NewAdminizer builds a spatial-enrichment Processor from a property tree
// and a caller-supplied auxiliary datasource (opaque to configuration, per
// spec.md §6), returning a ConfigError if param_name is missing.
func NewAdminizer(tree config.Tree, ds admin.AuxiliaryDatasource) (Processor, error) {
	cfg, err := parseAdminConfig(tree, ds)
	if err != nil {
		return nil, &ConfigError{Key: "param_name", Err: err}
	}
	a, err := admin.New(cfg)
	if err != nil {
		return nil, &ConfigError{Key: "admin", Err: err}
	}
	return &adminProcessor{a: a}, nil
}

// Pipeline runs processors in order over layer, stopping at the first error.
func Pipeline(layer *geom.Layer, mapCtx tilecoord.MapContext, processors ...Processor) error {
	for _, p := range processors {
		if err := p.Process(layer, mapCtx); err != nil {
			return err
		}
	}
	return nil
}
