package geom

// Layer is an ordered sequence of features sharing a schema. Processors
// mutate a Layer in place (spec.md §2, §3).
type Layer struct {
	Name     string
	features []*Feature
}

// NewLayer builds an empty named layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name}
}

// Features returns the layer's feature slice. Callers within this module
// are trusted to respect the "features with zero geometries are culled"
// invariant; external callers should treat it as read-only outside of
// AddFeature/CullEmpty.
func (l *Layer) Features() []*Feature { return l.features }

// Len returns the number of features currently in the layer.
func (l *Layer) Len() int { return len(l.features) }

// AddFeature appends a feature to the layer.
func (l *Layer) AddFeature(f *Feature) { l.features = append(l.features, f) }

// CullEmpty removes every feature whose geometry count has reached zero,
// the culling step the unionizer performs before returning (spec.md §3,
// §4.4 step 3). The adminizer removes no geometries and does not call it.
func (l *Layer) CullEmpty() {
	kept := l.features[:0]
	for _, f := range l.features {
		if !f.Empty() {
			kept = append(kept, f)
		}
	}
	l.features = kept
}

// Envelope returns the union of every feature's envelope, the "layer
// envelope" adminizer computes in spec.md §4.6 step 1.
func (l *Layer) Envelope() Envelope {
	env := EmptyEnvelope()
	for _, f := range l.features {
		env = env.Union(f.Envelope())
	}
	return env
}
