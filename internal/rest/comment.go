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

type CommentService interface {
	List(ctx context.Context, recommendationID, viewerID string) ([]domain.Comment, error)
	Create(ctx context.Context, userID, recommendationID string, parentID *string, content string) (domain.Comment, error)
}

type CommentHandler struct {
	commentService CommentService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateCommentRequest struct {
	RecommendationID string  `json:"recommendationId" validate:"required"`
	ParentID         *string `json:"parentId"`
	Content          string  `json:"content" validate:"required"`
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comments, err := h.commentService.List(ctx, c.Param("recommendationId"), viewerID(c))
	if err != nil {
		logger.Error("Failed to list comments", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate comment", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comment, err := h.commentService.Create(ctx, viewerID(c), req.RecommendationID, req.ParentID, req.Content)
	if err != nil {
		logger.Error("Failed to create comment", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}
