package domain

import "slices"

type PredicateKind int

const (
	PredicateOwnerIn PredicateKind = iota + 1
	PredicateOwnerNotIn
	PredicateCategoryEquals
	PredicateVisibleTo
	PredicateHasLocation
	PredicateHasProTip
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateOwnerIn:
		return "owner_in"
	case PredicateOwnerNotIn:
		return "owner_not_in"
	case PredicateCategoryEquals:
		return "category_equals"
	case PredicateVisibleTo:
		return "visible_to"
	case PredicateHasLocation:
		return "has_location"
	case PredicateHasProTip:
		return "has_pro_tip"
	default:
		return "unknown"
	}
}

// Predicate is one condition over a recommendation row. Only the fields
// relevant to Kind are set.
type Predicate struct {
	Kind       PredicateKind
	UserIDs    []string
	CategoryID string
	ViewerID   string
}

func OwnerIn(userIDs ...string) Predicate {
	return Predicate{Kind: PredicateOwnerIn, UserIDs: userIDs}
}

func OwnerNotIn(userIDs ...string) Predicate {
	return Predicate{Kind: PredicateOwnerNotIn, UserIDs: userIDs}
}

func CategoryEquals(categoryID string) Predicate {
	return Predicate{Kind: PredicateCategoryEquals, CategoryID: categoryID}
}

// VisibleTo keeps public rows plus the viewer's own private rows.
// An empty viewerID only sees public rows.
func VisibleTo(viewerID string) Predicate {
	return Predicate{Kind: PredicateVisibleTo, ViewerID: viewerID}
}

func HasLocation() Predicate {
	return Predicate{Kind: PredicateHasLocation}
}

func HasProTip() Predicate {
	return Predicate{Kind: PredicateHasProTip}
}

// Matches evaluates the predicate against r in memory.
func (p Predicate) Matches(r Recommendation) bool {
	switch p.Kind {
	case PredicateOwnerIn:
		return slices.Contains(p.UserIDs, r.UserID)
	case PredicateOwnerNotIn:
		return !slices.Contains(p.UserIDs, r.UserID)
	case PredicateCategoryEquals:
		return r.CategoryID != nil && *r.CategoryID == p.CategoryID
	case PredicateVisibleTo:
		return r.VisibleTo(p.ViewerID)
	case PredicateHasLocation:
		return r.HasLocation()
	case PredicateHasProTip:
		return r.ProTip != nil && *r.ProTip != ""
	default:
		return false
	}
}

// RecommendationQuery selects recommendations matching every predicate,
// newest first. A Limit of zero means no row cap.
type RecommendationQuery struct {
	Predicates []Predicate
	Limit      int
}

func NewRecommendationQuery(limit int, predicates ...Predicate) RecommendationQuery {
	return RecommendationQuery{Predicates: predicates, Limit: limit}
}

// Where returns a copy of q with p appended.
func (q RecommendationQuery) Where(p Predicate) RecommendationQuery {
	preds := make([]Predicate, 0, len(q.Predicates)+1)
	preds = append(preds, q.Predicates...)
	q.Predicates = append(preds, p)
	return q
}

func (q RecommendationQuery) Matches(r Recommendation) bool {
	for _, p := range q.Predicates {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}
