package rest

import (
	"context"
	"net/http"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetCategories(ctx context.Context, viewerID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, ownerID, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// GetCategories lists pre-built categories plus the caller's own
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetCategories(ctx, viewerID(c))
	if err != nil {
		logger.Error("Failed to find categories", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate category", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.CreateCategory(ctx, viewerID(c), req.Name)
	if err != nil {
		logger.Error("Failed to create category", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, viewerID(c), c.Param("id")); err != nil {
		logger.Error("Failed to delete category", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Category deleted successfully",
	})
}
