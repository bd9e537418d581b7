package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"cur8tr/business/geo"
	"cur8tr/domain"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

type fakeFeed struct {
	viewer, category string
	limit            int
	recs             []domain.Recommendation
	err              error
}

func (f *fakeFeed) Compose(_ context.Context, viewerID, categoryID string, limit int) ([]domain.Recommendation, error) {
	f.viewer, f.category, f.limit = viewerID, categoryID, limit
	return f.recs, f.err
}

func (f *fakeFeed) DefaultLimit() int { return 20 }

type fakeLikes map[string]int64

func (f fakeLikes) Decorate(_ context.Context, recs []domain.Recommendation) ([]domain.RecommendationWithLikes, error) {
	return domain.WithLikeCounts(recs, f), nil
}

type fakeRadius struct {
	center  geo.Point
	radius  float64
	viewer  string
	recs    []domain.Recommendation
	geocode map[string]geo.Point
	err     error
}

func (f *fakeRadius) Search(_ context.Context, center geo.Point, radius float64, viewerID string) ([]domain.Recommendation, error) {
	f.center, f.radius, f.viewer = center, radius, viewerID
	return f.recs, f.err
}

func (f *fakeRadius) ResolveCenter(_ context.Context, query string) (geo.Point, error) {
	if p, ok := f.geocode[query]; ok {
		return p, nil
	}
	return geo.Point{}, domain.ErrLocationNotFound
}

func newContext(target, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalidArgument), http.StatusBadRequest},
		{domain.ErrLocationNotFound, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{fmt.Errorf("x: %w: %w", domain.ErrRepositoryUnavailable, errors.New("db")), http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestGetActivityFeed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	feed := &fakeFeed{recs: []domain.Recommendation{
		{ID: "a", CreatedAt: now},
		{ID: "b", CreatedAt: now.Add(-time.Hour)},
	}}
	h := NewFeedHandler(feed, fakeLikes{"a": 3})

	c, rec := newContext("/api/activity-feed?categoryId=food", "viewer")
	if err := h.GetActivityFeed(c); err != nil {
		t.Fatalf("GetActivityFeed() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if feed.viewer != "viewer" || feed.category != "food" || feed.limit != 20 {
		t.Errorf("Compose args = %q %q %d", feed.viewer, feed.category, feed.limit)
	}

	var body []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 2 || body[0]["id"] != "a" || body[0]["likeCount"] != float64(3) || body[1]["likeCount"] != float64(0) {
		t.Errorf("body = %v", body)
	}
}

func TestGetActivityFeedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad limit", "/api/activity-feed?limit=abc", nil, http.StatusBadRequest},
		{"zero limit", "/api/activity-feed?limit=0", nil, http.StatusBadRequest},
		{"repository down", "/api/activity-feed", fmt.Errorf("x: %w", domain.ErrRepositoryUnavailable), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFeedHandler(&fakeFeed{err: tt.err}, fakeLikes{})
			c, rec := newContext(tt.target, "")
			_ = h.GetActivityFeed(c)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMapSearch(t *testing.T) {
	t.Parallel()

	nyc := geo.Point{Latitude: 40.7128, Longitude: -74.0060}

	tests := []struct {
		name       string
		query      url.Values
		wantStatus int
		wantCenter geo.Point
		wantRadius float64
	}{
		{"coordinates", url.Values{"lat": {"40.7128"}, "lng": {"-74.006"}, "radius": {"10"}}, http.StatusOK, nyc, 10},
		{"coordinates win over location", url.Values{"lat": {"1"}, "lng": {"2"}, "location": {"New York"}}, http.StatusOK, geo.Point{Latitude: 1, Longitude: 2}, 50},
		{"location", url.Values{"location": {"New York"}}, http.StatusOK, nyc, 50},
		{"unknown location", url.Values{"location": {"Atlantis"}}, http.StatusBadRequest, geo.Point{}, 0},
		{"nothing", url.Values{}, http.StatusBadRequest, geo.Point{}, 0},
		{"lat only", url.Values{"lat": {"1"}}, http.StatusBadRequest, geo.Point{}, 0},
		{"bad radius", url.Values{"lat": {"1"}, "lng": {"2"}, "radius": {"far"}}, http.StatusBadRequest, geo.Point{}, 0},
		{"bad lat", url.Values{"lat": {"north"}, "lng": {"2"}}, http.StatusBadRequest, geo.Point{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			radius := &fakeRadius{
				recs:    []domain.Recommendation{{ID: "r1"}},
				geocode: map[string]geo.Point{"New York": nyc},
			}
			h := NewMapHandler(radius, fakeLikes{"r1": 2}, 50)
			c, rec := newContext("/api/map/search?"+tt.query.Encode(), "")

			_ = h.Search(c)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body MapSearchResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Center != tt.wantCenter || body.Radius != tt.wantRadius || body.Count != 1 {
				t.Errorf("body = %+v", body)
			}
			if body.Recommendations[0].LikeCount != 2 {
				t.Errorf("likeCount = %d, want 2", body.Recommendations[0].LikeCount)
			}
			if radius.center != tt.wantCenter || radius.radius != tt.wantRadius {
				t.Errorf("Search args = %+v %v", radius.center, radius.radius)
			}
		})
	}
}

func TestMapSearchInvalidCoordinates(t *testing.T) {
	t.Parallel()

	radius := &fakeRadius{err: fmt.Errorf("latitude out of range: %w", domain.ErrInvalidArgument)}
	h := NewMapHandler(radius, fakeLikes{}, 50)
	c, rec := newContext("/api/map/search?lat=91&lng=0", "viewer")

	_ = h.Search(c)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if radius.viewer != "viewer" {
		t.Errorf("viewer = %q, want viewer", radius.viewer)
	}
}
