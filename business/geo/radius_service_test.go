package geo

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"
	"time"

	"cur8tr/domain"
)

type fakeRecRepo struct {
	recs  []domain.Recommendation
	err   error
	calls int
	last  domain.RecommendationQuery
}

func (f *fakeRecRepo) Find(_ context.Context, q domain.RecommendationQuery) ([]domain.Recommendation, error) {
	f.calls++
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Recommendation
	for _, r := range f.recs {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeGeocoder struct {
	point Point
	err   error
}

func (f fakeGeocoder) Geocode(context.Context, string) (Point, error) {
	return f.point, f.err
}

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func located(id, owner string, p Point, age time.Duration) domain.Recommendation {
	lat, lng := p.Latitude, p.Longitude
	return domain.Recommendation{
		ID:        id,
		UserID:    owner,
		Latitude:  &lat,
		Longitude: &lng,
		CreatedAt: epoch.Add(-age),
	}
}

func TestSearchFiltersAndKeepsRecency(t *testing.T) {
	t.Parallel()

	brooklyn := Point{40.6782, -73.9442}
	philly := Point{39.9526, -75.1652}
	recs := []domain.Recommendation{
		located("la", "u1", losAngeles, 0),
		located("brooklyn", "u1", brooklyn, 2*time.Hour),
		located("nyc", "u2", newYork, time.Hour),
		located("philly", "u3", philly, 30*time.Minute),
		{ID: "nowhere", UserID: "u1", CreatedAt: epoch},
	}
	repo := &fakeRecRepo{recs: recs}
	svc := NewRadiusService(repo, nil)

	got, err := svc.Search(context.Background(), newYork, 50, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"nyc", "brooklyn"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Search() = %v, want %v", ids(got), want)
	}

	got, err = svc.Search(context.Background(), newYork, 100, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"philly", "nyc", "brooklyn"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Search() = %v, want %v", ids(got), want)
	}

	if repo.last.Limit != 0 {
		t.Errorf("candidate fetch capped at %d", repo.last.Limit)
	}
}

func TestSearchRadiusBoundary(t *testing.T) {
	t.Parallel()

	recs := []domain.Recommendation{located("la", "u1", losAngeles, 0)}
	svc := NewRadiusService(&fakeRecRepo{recs: recs}, nil)
	exact := DistanceMiles(newYork, losAngeles)

	got, err := svc.Search(context.Background(), newYork, exact, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("point at exactly the radius excluded")
	}

	got, err = svc.Search(context.Background(), newYork, math.Nextafter(exact, 0), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("point beyond the radius included")
	}
}

func TestSearchZeroRadius(t *testing.T) {
	t.Parallel()

	recs := []domain.Recommendation{
		located("here", "u1", newYork, 0),
		located("near", "u1", Point{40.7129, -74.0060}, 0),
	}
	svc := NewRadiusService(&fakeRecRepo{recs: recs}, nil)

	got, err := svc.Search(context.Background(), newYork, 0, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"here"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Search() = %v, want %v", ids(got), want)
	}
}

func TestSearchVisibility(t *testing.T) {
	t.Parallel()

	private := located("secret", "owner", newYork, 0)
	private.IsPrivate = true
	recs := []domain.Recommendation{private, located("public", "other", newYork, time.Minute)}
	svc := NewRadiusService(&fakeRecRepo{recs: recs}, nil)

	for viewer, want := range map[string][]string{
		"":         {"public"},
		"stranger": {"public"},
		"owner":    {"secret", "public"},
	} {
		got, err := svc.Search(context.Background(), newYork, 10, viewer)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", viewer, err)
		}
		if !reflect.DeepEqual(ids(got), want) {
			t.Errorf("Search(%q) = %v, want %v", viewer, ids(got), want)
		}
	}
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		center Point
		radius float64
		repo   *fakeRecRepo
		want   error
	}{
		{"latitude too high", Point{91, 0}, 10, &fakeRecRepo{}, domain.ErrInvalidArgument},
		{"longitude too low", Point{0, -181}, 10, &fakeRecRepo{}, domain.ErrInvalidArgument},
		{"negative radius", newYork, -1, &fakeRecRepo{}, domain.ErrInvalidArgument},
		{"nan radius", newYork, math.NaN(), &fakeRecRepo{}, domain.ErrInvalidArgument},
		{"repository down", newYork, 10, &fakeRecRepo{err: errors.New("dial tcp")}, domain.ErrRepositoryUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRadiusService(tt.repo, nil)
			got, err := svc.Search(context.Background(), tt.center, tt.radius, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Search() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("partial result returned: %v", ids(got))
			}
		})
	}
}

func TestSearchIdempotent(t *testing.T) {
	t.Parallel()

	recs := []domain.Recommendation{
		located("a", "u1", newYork, 0),
		located("b", "u1", newYork, 0),
		located("c", "u1", newYork, time.Minute),
	}
	svc := NewRadiusService(&fakeRecRepo{recs: recs}, nil)

	first, _ := svc.Search(context.Background(), newYork, 5, "")
	second, _ := svc.Search(context.Background(), newYork, 5, "")
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("repeat call differs: %v vs %v", ids(first), ids(second))
	}
}

func TestResolveCenter(t *testing.T) {
	t.Parallel()

	svc := NewRadiusService(&fakeRecRepo{}, fakeGeocoder{point: newYork})
	got, err := svc.ResolveCenter(context.Background(), "  New York  ")
	if err != nil || got != newYork {
		t.Errorf("ResolveCenter() = %+v, %v", got, err)
	}

	tests := []struct {
		name     string
		geocoder Geocoder
		query    string
		want     error
	}{
		{"blank query", fakeGeocoder{point: newYork}, "   ", domain.ErrInvalidArgument},
		{"no match", fakeGeocoder{err: domain.ErrLocationNotFound}, "atlantis", domain.ErrLocationNotFound},
		{"upstream failure", fakeGeocoder{err: errors.New("502")}, "paris", domain.ErrLocationNotFound},
		{"no geocoder", nil, "paris", domain.ErrLocationNotFound},
		{"garbage coordinates", fakeGeocoder{point: Point{200, 0}}, "paris", domain.ErrLocationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRadiusService(&fakeRecRepo{}, tt.geocoder)
			if _, err := svc.ResolveCenter(context.Background(), tt.query); !errors.Is(err, tt.want) {
				t.Errorf("ResolveCenter() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func ids(recs []domain.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
