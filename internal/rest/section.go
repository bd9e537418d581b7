package rest

import (
	"context"
	"net/http"
	"time"

	"cur8tr/business/section"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/labstack/echo/v4"
)

type SectionService interface {
	List(ctx context.Context) ([]domain.Section, error)
	ListWithRecommendations(ctx context.Context) ([]domain.SectionWithRecommendations, error)
	Get(ctx context.Context, id string) (domain.Section, error)
	Create(ctx context.Context, adminID string, in section.CreateInput) (domain.Section, error)
	Update(ctx context.Context, id string, in section.UpdateInput) (domain.Section, error)
	Delete(ctx context.Context, id string) error
	AddRecommendation(ctx context.Context, sectionID, recommendationID string) (domain.SectionRecommendation, error)
	RemoveRecommendation(ctx context.Context, sectionID, recommendationID string) error
}

type SectionHandler struct {
	sectionService SectionService
	timeout        time.Duration
}

func NewSectionHandler(sectionService SectionService) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
		timeout:        10 * time.Second,
	}
}

type SectionRequest struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (h *SectionHandler) GetSections(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sections, err := h.sectionService.List(ctx)
	if err != nil {
		logger.Error("Failed to list sections", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, sections)
}

// GetSectionsWithRecommendations serves GET /api/sections/with-recommendations
func (h *SectionHandler) GetSectionsWithRecommendations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sections, err := h.sectionService.ListWithRecommendations(ctx)
	if err != nil {
		logger.Error("Failed to list sections with recommendations", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, sections)
}

func (h *SectionHandler) GetSection(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sec, err := h.sectionService.Get(ctx, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, sec)
}

func (h *SectionHandler) CreateSection(c echo.Context) error {
	var req SectionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	in := section.CreateInput{Title: deref(req.Title), Subtitle: req.Subtitle}
	if req.DisplayOrder != nil {
		in.DisplayOrder = *req.DisplayOrder
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sec, err := h.sectionService.Create(ctx, viewerID(c), in)
	if err != nil {
		logger.Error("Failed to create section", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, sec)
}

func (h *SectionHandler) UpdateSection(c echo.Context) error {
	var req SectionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sec, err := h.sectionService.Update(ctx, c.Param("id"), section.UpdateInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		logger.Error("Failed to update section", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, sec)
}

func (h *SectionHandler) DeleteSection(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sectionService.Delete(ctx, c.Param("id")); err != nil {
		logger.Error("Failed to delete section", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Section deleted",
	})
}

func (h *SectionHandler) AddRecommendation(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	link, err := h.sectionService.AddRecommendation(ctx, c.Param("sectionId"), c.Param("recommendationId"))
	if err != nil {
		logger.Error("Failed to add recommendation to section", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, link)
}

func (h *SectionHandler) RemoveRecommendation(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sectionService.RemoveRecommendation(ctx, c.Param("sectionId"), c.Param("recommendationId")); err != nil {
		logger.Error("Failed to remove recommendation from section", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Recommendation removed from section",
	})
}
