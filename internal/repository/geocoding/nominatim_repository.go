package geocoding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cur8tr/business/geo"
	"cur8tr/domain"

	"github.com/goccy/go-json"
)

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type NominatimRepository struct {
	cfg    NominatimConfig
	client *http.Client
}

func NewNominatimRepository(cfg NominatimConfig) *NominatimRepository {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &NominatimRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for query.
func (r *NominatimRepository) Geocode(ctx context.Context, query string) (geo.Point, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to read geocode response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("geocoder responded with status %d", res.StatusCode)
	}

	var places []place
	if err := json.Unmarshal(body, &places); err != nil {
		return geo.Point{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(places) == 0 {
		return geo.Point{}, fmt.Errorf("no match for %q: %w", query, domain.ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	return geo.Point{Latitude: lat, Longitude: lon}, nil
}
