package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cur8tr/business/recommendation"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	List(ctx context.Context, filter recommendation.ListFilter, viewerID string) ([]domain.Recommendation, error)
	ProTips(ctx context.Context, limit int) ([]domain.Recommendation, error)
	Get(ctx context.Context, id, viewerID string) (domain.Recommendation, error)
	Create(ctx context.Context, ownerID string, in recommendation.CreateInput) (domain.Recommendation, error)
	Update(ctx context.Context, ownerID, id string, in recommendation.UpdateInput) (domain.Recommendation, error)
	Delete(ctx context.Context, ownerID, id string) error
	Tags(ctx context.Context) ([]domain.Tag, error)
}

// AuthorFinder resolves the owner of a recommendation.
type AuthorFinder interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// CategoryLister lists the categories visible to a user.
type CategoryLister interface {
	GetCategories(ctx context.Context, viewerID string) ([]domain.Category, error)
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	likes                 LikeDecorator
	authors               AuthorFinder
	categories            CategoryLister
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService RecommendationService, likes LikeDecorator, authors AuthorFinder, categories CategoryLister) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		likes:                 likes,
		authors:               authors,
		categories:            categories,
		timeout:               10 * time.Second,
	}
}

type CreateRecommendationRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rating      int      `json:"rating"`
	ProTip      *string  `json:"proTip"`
	ImageURL    string   `json:"imageUrl"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ExternalURL *string  `json:"externalUrl"`
	CategoryID  *string  `json:"categoryId"`
	IsPrivate   bool     `json:"isPrivate"`
	Tags        []string `json:"tags"`
}

type UpdateRecommendationRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Rating      *int      `json:"rating"`
	ProTip      *string   `json:"proTip"`
	ImageURL    *string   `json:"imageUrl"`
	Location    *string   `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	ExternalURL *string   `json:"externalUrl"`
	CategoryID  *string   `json:"categoryId"`
	IsPrivate   *bool     `json:"isPrivate"`
	Tags        *[]string `json:"tags"`
}

func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	filter := recommendation.ListFilter{
		UserID:     c.QueryParam("userId"),
		CategoryID: c.QueryParam("categoryId"),
	}

	if raw := c.QueryParam("hasProTip"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "hasProTip must be a boolean"})
		}
		filter.HasProTip = v
	}

	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be an integer"})
		}
		filter.Limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendationService.List(ctx, filter, viewerID(c))
	if err != nil {
		logger.Error("Failed to list recommendations", err)
		return errorJSON(c, err)
	}

	decorated, err := h.likes.Decorate(ctx, recs)
	if err != nil {
		logger.Error("Failed to count likes for recommendations", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, decorated)
}

func (h *RecommendationHandler) GetProTips(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendationService.ProTips(ctx, 0)
	if err != nil {
		logger.Error("Failed to list pro tips", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, recs)
}

func (h *RecommendationHandler) GetRecommendation(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.recommendationService.Get(ctx, c.Param("id"), viewerID(c))
	if err != nil {
		logger.Error("Failed to get recommendation", err)
		return errorJSON(c, err)
	}

	author, err := h.authors.GetUserByID(ctx, rec.UserID)
	if err != nil {
		logger.Error("Failed to get recommendation author", err)
		return errorJSON(c, err)
	}

	// the category is looked up among the ones its owner can see
	var category *domain.Category
	if rec.CategoryID != nil {
		owned, err := h.categories.GetCategories(ctx, rec.UserID)
		if err != nil {
			logger.Error("Failed to resolve recommendation category", err)
			return errorJSON(c, err)
		}
		for i := range owned {
			if owned[i].ID == *rec.CategoryID {
				category = &owned[i]
				break
			}
		}
	}

	decorated, err := h.likes.Decorate(ctx, []domain.Recommendation{rec})
	if err != nil {
		logger.Error("Failed to count likes for recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, domain.RecommendationDetail{
		RecommendationWithLikes: decorated[0],
		User:                    &author,
		Category:                category,
	})
}

func (h *RecommendationHandler) CreateRecommendation(c echo.Context) error {
	var req CreateRecommendationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.recommendationService.Create(ctx, viewerID(c), recommendation.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		ProTip:      req.ProTip,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ExternalURL: req.ExternalURL,
		CategoryID:  req.CategoryID,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		logger.Error("Failed to create recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, rec)
}

func (h *RecommendationHandler) UpdateRecommendation(c echo.Context) error {
	var req UpdateRecommendationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.recommendationService.Update(ctx, viewerID(c), c.Param("id"), recommendation.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		ProTip:      req.ProTip,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ExternalURL: req.ExternalURL,
		CategoryID:  req.CategoryID,
		IsPrivate:   req.IsPrivate,
		Tags:        req.Tags,
	})
	if err != nil {
		logger.Error("Failed to update recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) DeleteRecommendation(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.recommendationService.Delete(ctx, viewerID(c), c.Param("id")); err != nil {
		logger.Error("Failed to delete recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Recommendation deleted successfully",
	})
}

func (h *RecommendationHandler) GetTags(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tags, err := h.recommendationService.Tags(ctx)
	if err != nil {
		logger.Error("Failed to list tags", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, tags)
}
