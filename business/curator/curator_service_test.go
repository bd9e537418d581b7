package curator

import (
	"context"
	"errors"
	"testing"

	"cur8tr/domain"
)

type fakeCuratorRepo struct {
	picks     []domain.CuratorRec
	lastLimit int
}

func (f *fakeCuratorRepo) FindRecent(_ context.Context, limit int) ([]domain.CuratorRec, error) {
	f.lastLimit = limit
	var out []domain.CuratorRec
	for _, p := range f.picks {
		if p.Recommendation != nil && p.Recommendation.IsPrivate {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCuratorRepo) RecommendationIDs(context.Context) ([]string, error) {
	var ids []string
	for _, p := range f.picks {
		ids = append(ids, p.RecommendationID)
	}
	return ids, nil
}

func (f *fakeCuratorRepo) Create(_ context.Context, p *domain.CuratorRec) error {
	for _, existing := range f.picks {
		if existing.RecommendationID == p.RecommendationID {
			return nil
		}
	}
	f.picks = append(f.picks, *p)
	return nil
}

func (f *fakeCuratorRepo) DeleteByRecommendation(_ context.Context, recID string) error {
	for i, p := range f.picks {
		if p.RecommendationID == recID {
			f.picks = append(f.picks[:i], f.picks[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeRecs map[string]domain.Recommendation

func (f fakeRecs) FindByID(_ context.Context, id string) (domain.Recommendation, error) {
	if r, ok := f[id]; ok {
		return r, nil
	}
	return domain.Recommendation{}, domain.ErrNotFound
}

func TestListSkipsPrivate(t *testing.T) {
	t.Parallel()

	repo := &fakeCuratorRepo{picks: []domain.CuratorRec{
		{RecommendationID: "a", Recommendation: &domain.Recommendation{ID: "a"}},
		{RecommendationID: "b", Recommendation: &domain.Recommendation{ID: "b", IsPrivate: true}},
		{RecommendationID: "c"},
	}}
	svc := NewCuratorService(repo, fakeRecs{})

	got, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("List() = %+v, want [a]", got)
	}
	if repo.lastLimit != 8 {
		t.Errorf("default limit = %d, want 8", repo.lastLimit)
	}
}

func TestListFillsLimitPastPrivatePicks(t *testing.T) {
	t.Parallel()

	repo := &fakeCuratorRepo{picks: []domain.CuratorRec{
		{RecommendationID: "a", Recommendation: &domain.Recommendation{ID: "a"}},
		{RecommendationID: "b", Recommendation: &domain.Recommendation{ID: "b", IsPrivate: true}},
		{RecommendationID: "c", Recommendation: &domain.Recommendation{ID: "c"}},
		{RecommendationID: "d", Recommendation: &domain.Recommendation{ID: "d"}},
	}}
	svc := NewCuratorService(repo, fakeRecs{})

	got, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d picks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestAddRemove(t *testing.T) {
	t.Parallel()

	repo := &fakeCuratorRepo{}
	recs := fakeRecs{
		"pub":  {ID: "pub"},
		"priv": {ID: "priv", IsPrivate: true},
	}
	svc := NewCuratorService(repo, recs)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.Add(ctx, "admin", "pub"); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	ids, err := svc.IDs(ctx)
	if err != nil || len(ids) != 1 {
		t.Errorf("IDs() = %v, %v", ids, err)
	}

	if err := svc.Add(ctx, "admin", "priv"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("Add(private) error = %v, want ErrInvalidArgument", err)
	}
	if err := svc.Add(ctx, "admin", "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Add(ghost) error = %v, want ErrNotFound", err)
	}

	if err := svc.Remove(ctx, "pub"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := svc.Remove(ctx, "pub"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
	ids, _ = svc.IDs(ctx)
	if ids == nil || len(ids) != 0 {
		t.Errorf("IDs() after Remove = %#v, want empty", ids)
	}
}
