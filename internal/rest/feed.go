package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/labstack/echo/v4"
)

type FeedService interface {
	Compose(ctx context.Context, viewerID, categoryID string, limit int) ([]domain.Recommendation, error)
	DefaultLimit() int
}

// LikeDecorator attaches like counts to recommendations
type LikeDecorator interface {
	Decorate(ctx context.Context, recs []domain.Recommendation) ([]domain.RecommendationWithLikes, error)
}

type FeedHandler struct {
	feedService FeedService
	likes       LikeDecorator
	timeout     time.Duration
}

func NewFeedHandler(feedService FeedService, likes LikeDecorator) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		likes:       likes,
		timeout:     10 * time.Second,
	}
}

// GetActivityFeed serves GET /api/activity-feed?categoryId=&limit=
func (h *FeedHandler) GetActivityFeed(c echo.Context) error {
	limit := h.feedService.DefaultLimit()
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be a positive integer"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.feedService.Compose(ctx, viewerID(c), c.QueryParam("categoryId"), limit)
	if err != nil {
		logger.Error("Failed to compose activity feed", err)
		return errorJSON(c, err)
	}

	decorated, err := h.likes.Decorate(ctx, recs)
	if err != nil {
		logger.Error("Failed to count likes for activity feed", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, decorated)
}
