package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cur8tr/business/adminrecommend"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AdminRecommendService interface {
	List(ctx context.Context, visibleOnly bool) ([]domain.AdminRecommend, error)
	Get(ctx context.Context, id string) (domain.AdminRecommend, error)
	Create(ctx context.Context, adminID string, in adminrecommend.CreateInput) (domain.AdminRecommend, error)
	Update(ctx context.Context, id string, in adminrecommend.UpdateInput) (domain.AdminRecommend, error)
	Delete(ctx context.Context, id string) error
	ToggleVisibility(ctx context.Context, id string) (domain.AdminRecommend, error)
}

type AdminRecommendHandler struct {
	adminRecommendService AdminRecommendService
	timeout               time.Duration
}

func NewAdminRecommendHandler(adminRecommendService AdminRecommendService) *AdminRecommendHandler {
	return &AdminRecommendHandler{
		adminRecommendService: adminRecommendService,
		timeout:               10 * time.Second,
	}
}

type AdminRecommendRequest struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	ImageURL    *string `json:"imageUrl"`
	ExternalURL *string `json:"externalUrl"`
	Price       *string `json:"price"`
	IsVisible   *bool   `json:"isVisible"`
	SectionID   *string `json:"sectionId"`
}

func (h *AdminRecommendHandler) GetAdminRecommends(c echo.Context) error {
	visibleOnly := false
	if raw := c.QueryParam("visibleOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "visibleOnly must be a boolean"})
		}
		visibleOnly = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cards, err := h.adminRecommendService.List(ctx, visibleOnly)
	if err != nil {
		logger.Error("Failed to list admin recommends", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, cards)
}

func (h *AdminRecommendHandler) GetAdminRecommend(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.adminRecommendService.Get(ctx, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, card)
}

func (h *AdminRecommendHandler) CreateAdminRecommend(c echo.Context) error {
	var req AdminRecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.adminRecommendService.Create(ctx, viewerID(c), adminrecommend.CreateInput{
		Title:       deref(req.Title),
		Subtitle:    req.Subtitle,
		ImageURL:    deref(req.ImageURL),
		ExternalURL: deref(req.ExternalURL),
		Price:       req.Price,
		IsVisible:   req.IsVisible,
		SectionID:   req.SectionID,
	})
	if err != nil {
		logger.Error("Failed to create admin recommend", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, card)
}

func (h *AdminRecommendHandler) UpdateAdminRecommend(c echo.Context) error {
	var req AdminRecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.adminRecommendService.Update(ctx, c.Param("id"), adminrecommend.UpdateInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		ImageURL:    req.ImageURL,
		ExternalURL: req.ExternalURL,
		Price:       req.Price,
		IsVisible:   req.IsVisible,
		SectionID:   req.SectionID,
	})
	if err != nil {
		logger.Error("Failed to update admin recommend", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, card)
}

func (h *AdminRecommendHandler) DeleteAdminRecommend(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.adminRecommendService.Delete(ctx, c.Param("id")); err != nil {
		logger.Error("Failed to delete admin recommend", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Admin recommend deleted",
	})
}

// ToggleVisibility serves POST /api/admin-recommends/:id/toggle-visibility
func (h *AdminRecommendHandler) ToggleVisibility(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.adminRecommendService.ToggleVisibility(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to toggle admin recommend", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, card)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
