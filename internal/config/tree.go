// Package config implements the string-keyed property tree spec.md §6
// describes as the configuration boundary: every processor, datasource and
// server option is addressed by a dotted path into a tree parsed from YAML.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tree is an immutable view over a parsed YAML document. Accessors return
// a zero value and false rather than erroring, mirroring the way the
// mapnik-style config layer in spec.md §6 treats missing keys as "use the
// default", leaving validation to the caller that knows what's required.
type Tree struct {
	value any
}

// Parse decodes YAML bytes into a Tree rooted at the document's top level.
func Parse(data []byte) (Tree, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Tree{}, fmt.Errorf("config: parse: %w", err)
	}
	return Tree{value: normalize(raw)}, nil
}

// normalize rewrites yaml.v3's map[string]interface{} keys (already string
// for YAML mappings with string keys) into a stable shape; present mainly
// so nested maps decoded at any depth behave the same under Subtree.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// lookup walks a dotted path ("union.tag_strategy") through nested maps.
func (t Tree) lookup(path string) (any, bool) {
	cur := t.value
	if path == "" {
		return cur, cur != nil
	}
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Subtree returns the tree rooted at path, for handing a datasource or
// processor factory only the slice of config it owns.
func (t Tree) Subtree(path string) (Tree, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return Tree{}, false
	}
	return Tree{value: v}, true
}

// String returns the string at path.
func (t Tree) String(path string) (string, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns the string at path, or def if absent.
func (t Tree) StringOr(path, def string) string {
	if s, ok := t.String(path); ok {
		return s
	}
	return def
}

// Float64 returns the float at path, accepting YAML ints decoded as int.
func (t Tree) Float64(path string) (float64, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Float64Or returns the float at path, or def if absent or the wrong type.
func (t Tree) Float64Or(path string, def float64) float64 {
	if f, ok := t.Float64(path); ok {
		return f
	}
	return def
}

// Uint returns the unsigned integer at path.
func (t Tree) Uint(path string) (uint64, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// StringSlice returns the string list at path.
func (t Tree) StringSlice(path string) ([]string, bool) {
	v, ok := t.lookup(path)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Strings returns every top-level key of a mapping tree whose value is a
// plain string, discarding nested maps/lists/non-string scalars. Used to
// hand a datasource factory the opaque key-value subtree spec.md §6 calls
// `datasource` without it needing to know the Tree type.
func (t Tree) Strings() map[string]string {
	m, ok := t.value.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Keys returns the top-level keys of a mapping tree, or nil if the tree's
// value isn't a mapping. The keys come back in no particular order.
func (t Tree) Keys() []string {
	m, ok := t.value.(map[string]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
