package geocoding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cur8tr/business/geo"
	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "geocoder",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// BreakerGeocoder fails fast while the upstream geocoder keeps erroring.
// A query with no match is a healthy answer and does not count as a failure.
type BreakerGeocoder struct {
	next    geo.Geocoder
	breaker *gobreaker.CircuitBreaker[geo.Point]
}

func NewBreakerGeocoder(next geo.Geocoder, cfg BreakerConfig) *BreakerGeocoder {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrLocationNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))

	return &BreakerGeocoder{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[geo.Point](settings),
	}
}

func (b *BreakerGeocoder) Geocode(ctx context.Context, query string) (geo.Point, error) {
	p, err := b.breaker.Execute(func() (geo.Point, error) {
		return b.next.Geocode(ctx, query)
	})
	if err != nil {
		if isOpen(err) {
			return geo.Point{}, fmt.Errorf("geocoder unavailable: %w", err)
		}
		return geo.Point{}, err
	}

	return p, nil
}

func isOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (b *BreakerGeocoder) State() gobreaker.State {
	return b.breaker.State()
}
