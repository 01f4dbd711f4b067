package datasource

import "github.com/tileforge/vtpost/internal/geom"

// Memory is an in-process Source over a fixed feature slice, for small
// deployments that bake in a static polygon set (e.g. admin boundaries
// baked into the binary). New returns an empty Memory for the "memory"
// kind and for an empty kind.
type Memory struct {
	features []*geom.Feature
}

// NewMemory builds a Memory datasource from an already-loaded feature set.
func NewMemory(features []*geom.Feature) *Memory {
	return &Memory{features: features}
}

// Query returns every feature whose envelope intersects env. A fresh slice
// is returned on each call so concurrent callers never observe partial
// mutation of a shared result (spec.md §5).
func (m *Memory) Query(env geom.Envelope) ([]*geom.Feature, error) {
	var result []*geom.Feature
	for _, f := range m.features {
		if f.Envelope().Intersects(env) {
			result = append(result, f)
		}
	}
	return result, nil
}
