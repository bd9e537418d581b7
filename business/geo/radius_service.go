package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/metrics"
)

// RecommendationRepository contract interface
type RecommendationRepository interface {
	Find(ctx context.Context, q domain.RecommendationQuery) ([]domain.Recommendation, error)
}

// Geocoder resolves free text to coordinates. Implementations return
// domain.ErrLocationNotFound when nothing matches.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Point, error)
}

type radiusService struct {
	recRepo  RecommendationRepository
	geocoder Geocoder
}

func NewRadiusService(recRepo RecommendationRepository, geocoder Geocoder) *radiusService {
	return &radiusService{
		recRepo:  recRepo,
		geocoder: geocoder,
	}
}

// Search returns every located recommendation visible to viewerID whose
// distance from center is at most radiusMiles, newest first.
func (s *radiusService) Search(ctx context.Context, center Point, radiusMiles float64, viewerID string) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching by radius")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !center.Valid() {
		logger.Error("Invalid search center", "latitude", center.Latitude, "longitude", center.Longitude)
		return nil, fmt.Errorf("coordinates out of range: %w", domain.ErrInvalidArgument)
	}

	if math.IsNaN(radiusMiles) || math.IsInf(radiusMiles, 0) || radiusMiles < 0 {
		logger.Error("Invalid search radius", "radius", radiusMiles)
		return nil, fmt.Errorf("radius must be a non-negative number: %w", domain.ErrInvalidArgument)
	}

	start := time.Now()
	defer func() {
		metrics.RadiusSearchLatency.Observe(time.Since(start).Seconds())
	}()

	candidates, err := s.recRepo.Find(ctx, domain.NewRecommendationQuery(0,
		domain.HasLocation(),
		domain.VisibleTo(viewerID),
	))
	if err != nil {
		logger.Error("Failed to fetch located recommendations", err)
		return nil, fmt.Errorf("failed to fetch located recommendations: %w: %w", domain.ErrRepositoryUnavailable, err)
	}

	matched := Within(candidates, center, radiusMiles)

	metrics.RadiusCandidates.Add(float64(len(candidates)))
	metrics.RadiusMatched.Add(float64(len(matched)))
	logger.Debug("radius search",
		"candidates", len(candidates),
		"matched", len(matched),
		"radius", radiusMiles,
	)

	return matched, nil
}

// Within keeps the located recommendations at most radiusMiles from center,
// preserving input order.
func Within(recs []domain.Recommendation, center Point, radiusMiles float64) []domain.Recommendation {
	out := make([]domain.Recommendation, 0)
	for _, r := range recs {
		if !r.HasLocation() {
			continue
		}
		p := Point{Latitude: *r.Latitude, Longitude: *r.Longitude}
		if DistanceMiles(center, p) <= radiusMiles {
			out = append(out, r)
		}
	}
	return out
}

// ResolveCenter geocodes free text into a search center.
func (s *radiusService) ResolveCenter(ctx context.Context, query string) (Point, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Point{}, fmt.Errorf("location is empty: %w", domain.ErrInvalidArgument)
	}

	if s.geocoder == nil {
		return Point{}, fmt.Errorf("no geocoder configured: %w", domain.ErrLocationNotFound)
	}

	p, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			logger.Warn("Location not found", "query", query)
			return Point{}, err
		}
		logger.Error("Failed to geocode location", err, "query", query)
		return Point{}, fmt.Errorf("geocoding %q: %w: %w", query, domain.ErrLocationNotFound, err)
	}

	if !p.Valid() {
		return Point{}, fmt.Errorf("geocoder returned out of range point: %w", domain.ErrLocationNotFound)
	}

	return p, nil
}
