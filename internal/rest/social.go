package rest

import (
	"context"
	"net/http"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SocialService interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	Like(ctx context.Context, userID, recommendationID string) error
	Unlike(ctx context.Context, userID, recommendationID string) error
	UserLikes(ctx context.Context, userID string) ([]domain.Like, error)
}

type SocialHandler struct {
	socialService SocialService
	timeout       time.Duration
}

func NewSocialHandler(socialService SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
		timeout:       10 * time.Second,
	}
}

func (h *SocialHandler) Follow(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.socialService.Follow(ctx, viewerID(c), c.Param("userId")); err != nil {
		logger.Error("Failed to follow user", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Followed successfully"))
}

func (h *SocialHandler) Unfollow(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.socialService.Unfollow(ctx, viewerID(c), c.Param("userId")); err != nil {
		logger.Error("Failed to unfollow user", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Unfollowed successfully"))
}

// IsFollowing serves GET /api/follow/:userId/status
func (h *SocialHandler) IsFollowing(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	following, err := h.socialService.IsFollowing(ctx, viewerID(c), c.Param("userId"))
	if err != nil {
		logger.Error("Failed to check follow status", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"isFollowing": following})
}

func (h *SocialHandler) Like(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.socialService.Like(ctx, viewerID(c), c.Param("recommendationId")); err != nil {
		logger.Error("Failed to like recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Liked successfully"))
}

func (h *SocialHandler) Unlike(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.socialService.Unlike(ctx, viewerID(c), c.Param("recommendationId")); err != nil {
		logger.Error("Failed to unlike recommendation", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Unliked successfully"))
}

// GetLikes returns the like rows of the caller
func (h *SocialHandler) GetLikes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	likes, err := h.socialService.UserLikes(ctx, viewerID(c))
	if err != nil {
		logger.Error("Failed to list likes", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, likes)
}
