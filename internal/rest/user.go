package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cur8tr/business/user"
	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, in user.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error)
	Logout(ctx context.Context, userID, token string) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, id string, in user.ProfileInput) (domain.User, error)
	GetStats(ctx context.Context, id string) (domain.UserStats, error)
	FeaturedUsers(ctx context.Context, limit int) ([]domain.FeaturedUser, error)
	PlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=50"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username        *string `json:"username"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profileImageUrl"`
	InstagramURL    *string `json:"instagramUrl"`
	TiktokURL       *string `json:"tiktokUrl"`
	YoutubeURL      *string `json:"youtubeUrl"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validation user register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newUser, err := h.userService.Register(ctx, user.RegisterInput{
		Email:    reqUser.Email,
		Password: reqUser.Password,
		Username: reqUser.Username,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
		"user":    newUser,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, loggedIn, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		logger.Error("Failed to login with user", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    loggedIn,
	})
}

// Logout revokes the bearer token of the request
func (h *UserHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userID := viewerID(c)
	token, ok := c.Get("token").(string)
	if userID == "" || !ok {
		logger.Error("Failed to get session from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.userService.Logout(ctx, userID, token); err != nil {
		logger.Error("Failed to logout user", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

// GetCurrentUser serves GET /api/auth/user
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	current, err := h.userService.GetUserByID(ctx, viewerID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, current)
}

func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.userService.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, found)
}

func (h *UserHandler) GetUserStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.userService.GetStats(ctx, c.Param("userId"))
	if err != nil {
		logger.Error("Failed to get user stats", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// GetFeaturedUsers serves GET /api/users/featured
func (h *UserHandler) GetFeaturedUsers(c echo.Context) error {
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

	users, err := h.userService.FeaturedUsers(ctx, limit)
	if err != nil {
		logger.Error("Failed to list featured users", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetPlatformStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.userService.PlatformStats(ctx)
	if err != nil {
		logger.Error("Failed to load platform stats", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.userService.UpdateProfile(ctx, viewerID(c), user.ProfileInput{
		Username:        req.Username,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
		InstagramURL:    req.InstagramURL,
		TiktokURL:       req.TiktokURL,
		YoutubeURL:      req.YoutubeURL,
	})
	if err != nil {
		logger.Error("Failed to update profile", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
