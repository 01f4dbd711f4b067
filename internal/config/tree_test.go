package config

import "testing"

const sampleYAML = `
union:
  tag_strategy: intersect
  split_ratio: 0.25
  keep_ids_tag: merged_from
  heuristics:
    - greedy
    - obtuse
admin:
  param_name: admin_name
datasource:
  kind: postgis
  table: boundaries
`

func TestParseAndLookupScalars(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v, ok := tree.String("union.tag_strategy"); !ok || v != "intersect" {
		t.Errorf("union.tag_strategy = %q, %v, want intersect, true", v, ok)
	}
	if v, ok := tree.Float64("union.split_ratio"); !ok || v != 0.25 {
		t.Errorf("union.split_ratio = %v, %v, want 0.25, true", v, ok)
	}
}

func TestParseMissingPathReturnsFalse(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := tree.String("union.nonexistent"); ok {
		t.Errorf("expected missing key to report false")
	}
	if got := tree.StringOr("union.nonexistent", "fallback"); got != "fallback" {
		t.Errorf("StringOr = %q, want fallback", got)
	}
}

func TestSubtreeScopesToNestedMap(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sub, ok := tree.Subtree("datasource")
	if !ok {
		t.Fatal("Subtree(datasource) not found")
	}
	if v, ok := sub.String("table"); !ok || v != "boundaries" {
		t.Errorf("datasource.table = %q, %v, want boundaries, true", v, ok)
	}
}

func TestStringSlice(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, ok := tree.StringSlice("union.heuristics")
	if !ok {
		t.Fatal("StringSlice(union.heuristics) not found")
	}
	want := []string{"greedy", "obtuse"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("StringSlice = %v, want %v", got, want)
	}
}

func TestKeysOnTopLevelMapping(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	keys := tree.Keys()
	if len(keys) != 3 {
		t.Errorf("got %d top-level keys, want 3", len(keys))
	}
}

func TestStringsExtractsOnlyStringValues(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sub, _ := tree.Subtree("datasource")
	got := sub.Strings()
	if got["kind"] != "postgis" || got["table"] != "boundaries" {
		t.Errorf("Strings() = %v, want kind/table populated", got)
	}
}

func TestKeysOnScalarReturnsNil(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sub, _ := tree.Subtree("union.tag_strategy")
	if keys := sub.Keys(); keys != nil {
		t.Errorf("Keys() on scalar = %v, want nil", keys)
	}
}
