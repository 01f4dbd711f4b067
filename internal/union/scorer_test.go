package union

import "testing"

func TestGreedyScorePrefersFrontBack(t *testing.T) {
	front := Candidate{Position: Front}
	back := Candidate{Position: Back}

	if s := greedyScore(front, back); s != 0 {
		t.Errorf("front/back greedy score = %d, want 0", s)
	}
	if s := greedyScore(back, back); s != 127 {
		t.Errorf("back/back greedy score = %d, want 127", s)
	}
	if s := greedyScore(front, front); s != 255 {
		t.Errorf("front/front greedy score = %d, want 255", s)
	}
}

func TestObtuseScorePrefersOppositeDirections(t *testing.T) {
	a := Candidate{Dx: -1, Dy: 0}
	b := Candidate{Dx: 1, Dy: 0}
	if s := obtuseScore(a, b); s != 0 {
		t.Errorf("opposite directions obtuse score = %d, want 0", s)
	}

	c := Candidate{Dx: 1, Dy: 0}
	d := Candidate{Dx: 1, Dy: 0}
	if s := obtuseScore(c, d); s != 255 {
		t.Errorf("same direction obtuse score = %d, want 255", s)
	}
}

func TestAcuteIsObtuseComplement(t *testing.T) {
	a := Candidate{Dx: -1, Dy: 0}
	b := Candidate{Dx: 1, Dy: 0}
	if score(a, b, Acute) != 255-obtuseScore(a, b) {
		t.Error("acute score should be 255 minus obtuse score")
	}
}

func TestCompatibleRejectsSameGeometry(t *testing.T) {
	a := Candidate{FeatureIdx: 1, GeomIdx: 0, Position: Front}
	b := Candidate{FeatureIdx: 1, GeomIdx: 0, Position: Back}
	if compatible(a, b) {
		t.Error("two candidates of the same feature+geometry must be incompatible")
	}
}

func TestCompatibleRejectsMismatchedDirectionalFlags(t *testing.T) {
	a := Candidate{FeatureIdx: 1, Directional: true}
	b := Candidate{FeatureIdx: 2, Directional: false}
	if compatible(a, b) {
		t.Error("mismatched directional flags must be incompatible")
	}
}

func TestCompatibleRejectsBothDirectionalSamePosition(t *testing.T) {
	a := Candidate{FeatureIdx: 1, Directional: true, Position: Back}
	b := Candidate{FeatureIdx: 2, Directional: true, Position: Back}
	if compatible(a, b) {
		t.Error("two directional candidates meeting back-back must be incompatible")
	}
}

func TestObtuseHeuristicPicksStraightContinuation(t *testing.T) {
	// Three linestrings ending at the origin: A heads to (-1,0), B heads to
	// (1,0), C heads to (0,1) (spec.md §8 scenario 5).
	a := Candidate{FeatureIdx: 0, Position: Back, Dx: -1, Dy: 0}
	b := Candidate{FeatureIdx: 1, Position: Back, Dx: 1, Dy: 0}
	c := Candidate{FeatureIdx: 2, Position: Back, Dx: 0, Dy: 1}
	group := Group{Candidates: []Candidate{a, b, c}}

	ids := []int64{1, 2, 3}
	pairs := ScoreGroup(group, Obtuse, func(i int) int64 { return ids[i] })
	if len(pairs) == 0 {
		t.Fatal("expected scored pairs")
	}
	best := pairs[0]
	gotA, gotB := best.A.FeatureIdx, best.B.FeatureIdx
	if !(gotA == 0 && gotB == 1) && !(gotA == 1 && gotB == 0) {
		t.Errorf("best obtuse pair = (%d, %d), want A and B (opposite directions)", gotA, gotB)
	}
}

func TestScoreGroupOrdersAscending(t *testing.T) {
	group := Group{Candidates: []Candidate{
		{FeatureIdx: 0, GeomIdx: 0, Position: Front},
		{FeatureIdx: 1, GeomIdx: 0, Position: Back},
		{FeatureIdx: 2, GeomIdx: 0, Position: Front},
	}}
	ids := []int64{10, 20, 30}
	pairs := ScoreGroup(group, Greedy, func(i int) int64 { return ids[i] })

	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].Score > pairs[i].Score {
			t.Fatalf("pairs not ascending at %d: %d > %d", i, pairs[i-1].Score, pairs[i].Score)
		}
	}
}
