package union

import (
	"fmt"
	"math"
	"sort"
)

// Heuristic selects the pair-scoring strategy (spec.md §4.3, §6
// union_heuristic).
type Heuristic int

const (
	Greedy Heuristic = iota
	Obtuse
	Acute
)

// Pair is a scored candidate of a potential splice: two candidates from the
// same adjacency group, with a score where 0 is best and 255 is worst.
type Pair struct {
	A, B  Candidate
	Score uint8
}

// compatible applies the rejection filter of spec.md §4.3: same
// feature+geometry, mismatched directional flags, or two directional
// candidates meeting front-to-front/back-to-back (which would reverse
// direction on one side) are never scored.
func compatible(a, b Candidate) bool {
	if a.FeatureIdx == b.FeatureIdx && a.GeomIdx == b.GeomIdx {
		return false
	}
	if a.Directional != b.Directional {
		return false
	}
	if a.Directional && b.Directional && a.Position == b.Position {
		return false
	}
	return true
}

func score(a, b Candidate, h Heuristic) uint8 {
	switch h {
	case Greedy:
		return greedyScore(a, b)
	case Obtuse:
		return obtuseScore(a, b)
	case Acute:
		return 255 - obtuseScore(a, b)
	default:
		return greedyScore(a, b)
	}
}

func greedyScore(a, b Candidate) uint8 {
	if a.Position != b.Position {
		return 0
	}
	if a.Position == Back {
		return 127
	}
	return 255
}

func obtuseScore(a, b Candidate) uint8 {
	if (a.Dx == 0 && a.Dy == 0) || (b.Dx == 0 && b.Dy == 0) {
		return 255
	}
	dot := a.Dx*b.Dx + a.Dy*b.Dy
	s := math.Round(255 * (dot + 1) / 2)
	if s < 0 {
		s = 0
	}
	if s > 255 {
		s = 255
	}
	return uint8(s)
}

// ScoreGroup scores every compatible pair within a single adjacency group
// and returns them ordered by ascending score (best first). Ties are broken
// deterministically by feature-id pair and position, since the underlying
// score-ordered map in a reference implementation has no canonical
// secondary order for equal keys (spec.md §9).
func ScoreGroup(g Group, h Heuristic, featureID func(idx int) int64) []Pair {
	var pairs []Pair
	cs := g.Candidates
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			a, b := cs[i], cs[j]
			if !compatible(a, b) {
				continue
			}
			pairs = append(pairs, Pair{A: a, B: b, Score: score(a, b, h)})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score < pairs[j].Score
		}
		return pairKey(pairs[i], featureID) < pairKey(pairs[j], featureID)
	})
	return pairs
}

// pairKey gives a stable tie-break string for two pairs with equal scores:
// the ordered feature ids and positions involved.
func pairKey(p Pair, featureID func(idx int) int64) string {
	aID, bID := featureID(p.A.FeatureIdx), featureID(p.B.FeatureIdx)
	lo, hi := aID, bID
	loPos, hiPos := p.A.Position, p.B.Position
	if bID < aID {
		lo, hi = bID, aID
		loPos, hiPos = p.B.Position, p.A.Position
	}
	return itoaPair(lo, loPos, hi, hiPos)
}

func itoaPair(lo int64, loPos Position, hi int64, hiPos Position) string {
	return fmt.Sprintf("%d:%d|%d:%d", lo, loPos, hi, hiPos)
}
