package domain

import "testing"

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64  { return &f }

func TestPredicateMatches(t *testing.T) {
	t.Parallel()

	pub := Recommendation{ID: "r1", UserID: "alice", CategoryID: strPtr("food"), Latitude: fPtr(1), Longitude: fPtr(2), ProTip: strPtr("go early")}
	priv := Recommendation{ID: "r2", UserID: "bob", IsPrivate: true, Latitude: fPtr(1)}

	tests := []struct {
		name string
		pred Predicate
		rec  Recommendation
		want bool
	}{
		{"owner in hit", OwnerIn("alice", "carol"), pub, true},
		{"owner in miss", OwnerIn("carol"), pub, false},
		{"owner in empty set", OwnerIn(), pub, false},
		{"owner not in hit", OwnerNotIn("bob"), pub, true},
		{"owner not in miss", OwnerNotIn("alice"), pub, false},
		{"category equals", CategoryEquals("food"), pub, true},
		{"category differs", CategoryEquals("bars"), pub, false},
		{"category null", CategoryEquals("food"), priv, false},
		{"public visible to anonymous", VisibleTo(""), pub, true},
		{"private hidden from anonymous", VisibleTo(""), priv, false},
		{"private hidden from stranger", VisibleTo("alice"), priv, false},
		{"private visible to owner", VisibleTo("bob"), priv, true},
		{"has location", HasLocation(), pub, true},
		{"half location is no location", HasLocation(), priv, false},
		{"has pro tip", HasProTip(), pub, true},
		{"no pro tip", HasProTip(), priv, false},
		{"empty pro tip", HasProTip(), Recommendation{ProTip: strPtr("")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Matches(tt.rec); got != tt.want {
				t.Errorf("%s.Matches() = %v, want %v", tt.pred.Kind, got, tt.want)
			}
		})
	}
}

func TestRecommendationQueryIsConjunction(t *testing.T) {
	t.Parallel()

	rec := Recommendation{UserID: "alice", CategoryID: strPtr("food")}
	q := NewRecommendationQuery(10, OwnerIn("alice"), CategoryEquals("food"))
	if !q.Matches(rec) {
		t.Fatal("expected query to match")
	}

	narrowed := q.Where(CategoryEquals("bars"))
	if narrowed.Matches(rec) {
		t.Error("expected narrowed query to reject")
	}
	if len(q.Predicates) != 2 {
		t.Errorf("Where mutated the receiver: %d predicates, want 2", len(q.Predicates))
	}
	if !NewRecommendationQuery(0).Matches(rec) {
		t.Error("empty query should match everything")
	}
}

func TestWithLikeCountsDefaultsToZero(t *testing.T) {
	t.Parallel()

	recs := []Recommendation{{ID: "a"}, {ID: "b"}}
	out := WithLikeCounts(recs, map[string]int64{"a": 3})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].LikeCount != 3 || out[1].LikeCount != 0 {
		t.Errorf("like counts = %d,%d, want 3,0", out[0].LikeCount, out[1].LikeCount)
	}
}
