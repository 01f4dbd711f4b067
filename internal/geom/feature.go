package geom

// Feature is an entity with a numeric id, an ordered list of geometries,
// and a key/value attribute map (spec.md §3).
type Feature struct {
	ID         int64
	geometries []Geometry
	attrs      map[string]Value
	// order preserves attribute insertion order for deterministic iteration
	// via Entries, independent of Go's randomized map order.
	order []string
}

// NewFeature builds a feature with the given id and no geometries or
// attributes.
func NewFeature(id int64) *Feature {
	return &Feature{ID: id, attrs: make(map[string]Value)}
}

// Geometries returns the feature's ordered geometry list.
func (f *Feature) Geometries() []Geometry { return f.geometries }

// GeometryCount returns how many geometries the feature currently holds.
func (f *Feature) GeometryCount() int { return len(f.geometries) }

// AddGeometry appends a geometry to the feature.
func (f *Feature) AddGeometry(g Geometry) { f.geometries = append(f.geometries, g) }

// SetGeometry replaces the geometry at index i.
func (f *Feature) SetGeometry(i int, g Geometry) { f.geometries[i] = g }

// RemoveGeometry erases the geometry at index i, shifting later indices
// down by one. Callers that hold other indices into this feature's
// geometry list from before the call must treat them as invalidated
// (spec.md §4.4, "Geometry index invalidation").
func (f *Feature) RemoveGeometry(i int) {
	f.geometries = append(f.geometries[:i], f.geometries[i+1:]...)
}

// Empty reports whether the feature has no geometries left, the condition
// under which a layer culls it (spec.md §3).
func (f *Feature) Empty() bool { return len(f.geometries) == 0 }

// Has reports whether the feature carries attribute key k.
func (f *Feature) Has(k string) bool {
	_, ok := f.attrs[k]
	return ok
}

// Get returns the attribute value at key k, and whether it was present.
func (f *Feature) Get(k string) (Value, bool) {
	v, ok := f.attrs[k]
	return v, ok
}

// Put replaces the value at an existing key k, or inserts it if new,
// tracking insertion order for new keys.
func (f *Feature) Put(k string, v Value) {
	if _, ok := f.attrs[k]; !ok {
		f.order = append(f.order, k)
	}
	f.attrs[k] = v
}

// PutNew inserts a key that the feature is not expected to already carry.
// Behaves like Put; kept distinct to mirror the boundary contract in
// spec.md §6 (some encoders require a wire-level "add new key" versus
// "replace existing key" distinction).
func (f *Feature) PutNew(k string, v Value) { f.Put(k, v) }

// SetNull marks key k deleted by writing the null variant, the documented
// deletion protocol for attributes (spec.md §3, §9).
func (f *Feature) SetNull(k string) { f.Put(k, Null()) }

// Entries iterates the feature's attributes in insertion order.
func (f *Feature) Entries(visit func(key string, v Value)) {
	for _, k := range f.order {
		visit(k, f.attrs[k])
	}
}

// Envelope returns the union of all of the feature's geometry envelopes.
func (f *Feature) Envelope() Envelope {
	env := EmptyEnvelope()
	for _, g := range f.geometries {
		env = env.Union(g.Envelope())
	}
	return env
}
