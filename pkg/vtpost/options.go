package vtpost

import (
	"strings"

	"github.com/tileforge/vtpost/internal/admin"
	"github.com/tileforge/vtpost/internal/config"
	"github.com/tileforge/vtpost/internal/union"
)

// parseUnionConfig resolves the spec.md §6 union keys out of a Tree rooted
// at the processor's own subtree (e.g. the value under a `union:` key in
// the pipeline config), layering them onto union.DefaultConfig().
func parseUnionConfig(tree config.Tree) (union.Config, error) {
	cfg := union.DefaultConfig()

	if v, ok := tree.String("union_heuristic"); ok {
		h, err := parseHeuristic(v)
		if err != nil {
			return union.Config{}, &ConfigError{Key: "union_heuristic", Err: err}
		}
		cfg.Heuristic = h
	}

	if v, ok := tree.String("tag_strategy"); ok {
		s, err := parseTagStrategy(v)
		if err != nil {
			return union.Config{}, &ConfigError{Key: "tag_strategy", Err: err}
		}
		cfg.TagStrategy = s
	}

	cfg.KeepIDsTag = tree.StringOr("keep_ids_tag", "")

	if v, ok := tree.Uint("max_iterations"); ok {
		cfg.MaxIterations = v
	}
	if v, ok := tree.StringSlice("match_tags"); ok {
		cfg.MatchTags = v
	}
	if v, ok := tree.StringSlice("preserve_direction_tags"); ok {
		cfg.PreserveDirectionTags = v
	}
	if v, ok := tree.Float64("angle_union_sample_ratio"); ok {
		cfg.AngleSampleRatio = v
	}

	return cfg, nil
}

func parseHeuristic(v string) (union.Heuristic, error) {
	switch strings.ToLower(v) {
	case "greedy":
		return union.Greedy, nil
	case "obtuse":
		return union.Obtuse, nil
	case "acute":
		return union.Acute, nil
	default:
		return 0, &ErrUnknownHeuristic{Value: v}
	}
}

func parseTagStrategy(v string) (union.TagStrategy, error) {
	switch strings.ToLower(v) {
	case "intersect":
		return union.Intersect, nil
	case "accumulate":
		return union.Accumulate, nil
	default:
		return 0, &ErrUnknownTagStrategy{Value: v}
	}
}

// parseAdminConfig resolves the spec.md §6 admin keys. The datasource itself
// is supplied by the caller (it is opaque to the config layer, per spec.md
// §6): "an auxiliary polygon datasource descriptor (opaque to this spec)".
func parseAdminConfig(tree config.Tree, ds admin.AuxiliaryDatasource) (admin.Config, error) {
	paramName, ok := tree.String("param_name")
	if !ok || paramName == "" {
		return admin.Config{}, &admin.ErrMissingParamName{}
	}
	return admin.Config{ParamName: paramName, Datasource: ds}, nil
}
