package geom

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindNull marks an attribute as deleted. The encoder boundary is
	// expected to skip null-valued attributes entirely.
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

// Value is a sum type over the attribute value variants a feature can carry:
// null, integer, floating point, boolean, and string.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

// Null returns the null variant, the documented deletion marker.
func Null() Value { return Value{kind: KindNull} }

// Int wraps an integer attribute value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float wraps a floating point attribute value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Bool wraps a boolean attribute value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String wraps a string attribute value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports which variant this Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether this is the deletion marker variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer variant and whether v held one.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float64 returns the floating variant and whether v held one.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// BoolValue returns the boolean variant and whether v held one.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Str returns the string variant and whether v held one.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Equal reports whether two values are the same kind and hold the same
// payload. Values of different kinds are never equal, even if they could
// be coerced to the same representation (an Int(1) and a Float(1) differ).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	default:
		return false
	}
}

// Less provides the ordering used by the candidate index's secondary key
// (§4.2): a deterministic total order across the attribute value variants.
// Kind order is Null < Int < Float < Bool < String; within a kind, values
// compare by the underlying Go type.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindInt:
		return v.i < o.i
	case KindFloat:
		return v.f < o.f
	case KindBool:
		return !v.b && o.b
	case KindString:
		return v.s < o.s
	default:
		return false
	}
}

// String renders the value for debugging.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<null>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}
