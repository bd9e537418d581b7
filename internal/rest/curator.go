package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CuratorService interface {
	List(ctx context.Context, limit int) ([]domain.Recommendation, error)
	IDs(ctx context.Context) ([]string, error)
	Add(ctx context.Context, curatorID, recommendationID string) error
	Remove(ctx context.Context, recommendationID string) error
}

type CuratorHandler struct {
	curatorService CuratorService
	timeout        time.Duration
}

func NewCuratorHandler(curatorService CuratorService) *CuratorHandler {
	return &CuratorHandler{
		curatorService: curatorService,
		timeout:        10 * time.Second,
	}
}

func (h *CuratorHandler) GetCuratorRecs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "limit must be a positive integer"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.curatorService.List(ctx, limit)
	if err != nil {
		logger.Error("Failed to list curator picks", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, recs)
}

func (h *CuratorHandler) GetCuratorRecIDs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ids, err := h.curatorService.IDs(ctx)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ids)
}

func (h *CuratorHandler) AddCuratorRec(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.curatorService.Add(ctx, viewerID(c), c.Param("recommendationId")); err != nil {
		logger.Error("Failed to add curator pick", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Curator pick added"))
}

func (h *CuratorHandler) RemoveCuratorRec(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.curatorService.Remove(ctx, c.Param("recommendationId")); err != nil {
		logger.Error("Failed to remove curator pick", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Curator pick removed"))
}
