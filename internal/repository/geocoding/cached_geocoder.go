package geocoding

import (
	"context"
	"errors"

	"cur8tr/business/geo"
	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/metrics"
)

// Cache stores resolved points by query text.
type Cache interface {
	Get(ctx context.Context, query string) (geo.Point, bool, error)
	Set(ctx context.Context, query string, p geo.Point) error
}

type CachedGeocoder struct {
	cache Cache
	next  geo.Geocoder
}

func NewCachedGeocoder(cache Cache, next geo.Geocoder) *CachedGeocoder {
	return &CachedGeocoder{
		cache: cache,
		next:  next,
	}
}

// Geocode serves from the cache when it can. Cache errors degrade to a
// direct lookup.
func (g *CachedGeocoder) Geocode(ctx context.Context, query string) (geo.Point, error) {
	p, ok, err := g.cache.Get(ctx, query)
	if err != nil {
		logger.Warn("geocode cache read failed", err)
	}
	if ok {
		metrics.GeocodeRequests.WithLabelValues("hit").Inc()
		return p, nil
	}

	p, err = g.next.Geocode(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLocationNotFound):
			metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		case isOpen(err):
			metrics.GeocodeRequests.WithLabelValues("open").Inc()
		default:
			metrics.GeocodeRequests.WithLabelValues("error").Inc()
		}
		return geo.Point{}, err
	}
	metrics.GeocodeRequests.WithLabelValues("miss").Inc()

	if err := g.cache.Set(ctx, query, p); err != nil {
		logger.Warn("geocode cache write failed", err)
	}

	return p, nil
}
