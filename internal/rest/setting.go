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

type SettingService interface {
	Get(ctx context.Context, key string) (*string, error)
	Set(ctx context.Context, key, value string) (domain.AppSetting, error)
}

type SettingHandler struct {
	settingService SettingService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewSettingHandler(settingService SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type SetSettingRequest struct {
	Key   string  `json:"key" validate:"required"`
	Value *string `json:"value" validate:"required"`
}

type SettingResponse struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

func (h *SettingHandler) GetSetting(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	key := c.Param("key")
	value, err := h.settingService.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to get setting", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, SettingResponse{Key: key, Value: value})
}

func (h *SettingHandler) SetSetting(c echo.Context) error {
	var req SetSettingRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid request: key and value required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stored, err := h.settingService.Set(ctx, req.Key, *req.Value)
	if err != nil {
		logger.Error("Failed to store setting", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stored)
}
