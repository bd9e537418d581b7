package rest

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"cur8tr/business/geo"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/labstack/echo/v4"
)

type RadiusService interface {
	Search(ctx context.Context, center geo.Point, radiusMiles float64, viewerID string) ([]domain.Recommendation, error)
	ResolveCenter(ctx context.Context, query string) (geo.Point, error)
}

type MapHandler struct {
	radiusService RadiusService
	likes         LikeDecorator
	defaultRadius float64
	timeout       time.Duration
}

func NewMapHandler(radiusService RadiusService, likes LikeDecorator, defaultRadius float64) *MapHandler {
	return &MapHandler{
		radiusService: radiusService,
		likes:         likes,
		defaultRadius: defaultRadius,
		timeout:       10 * time.Second,
	}
}

type MapSearchResponse struct {
	Center          geo.Point                        `json:"center"`
	Radius          float64                          `json:"radius"`
	Count           int                              `json:"count"`
	Recommendations []domain.RecommendationWithLikes `json:"recommendations"`
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Search serves GET /api/map/search. lat/lng take precedence over the
// free-text location.
func (h *MapHandler) Search(c echo.Context) error {
	radius := h.defaultRadius
	if raw := c.QueryParam("radius"); raw != "" {
		v, ok := parseFloat(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "radius must be a number"})
		}
		radius = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var center geo.Point
	latRaw, lngRaw, location := c.QueryParam("lat"), c.QueryParam("lng"), c.QueryParam("location")

	switch {
	case latRaw != "" && lngRaw != "":
		lat, okLat := parseFloat(latRaw)
		lng, okLng := parseFloat(lngRaw)
		if !okLat || !okLng {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "lat and lng must be numbers"})
		}
		center = geo.Point{Latitude: lat, Longitude: lng}
	case location != "":
		p, err := h.radiusService.ResolveCenter(ctx, location)
		if err != nil {
			logger.Warn("Failed to geocode location", err, "location", location)
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "Location not found"})
		}
		center = p
	default:
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Please provide either location text or lat/lng coordinates"})
	}

	recs, err := h.radiusService.Search(ctx, center, radius, viewerID(c))
	if err != nil {
		logger.Error("Failed to search map", err)
		return errorJSON(c, err)
	}

	decorated, err := h.likes.Decorate(ctx, recs)
	if err != nil {
		logger.Error("Failed to count likes for map search", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, MapSearchResponse{
		Center:          center,
		Radius:          radius,
		Count:           len(decorated),
		Recommendations: decorated,
	})
}
