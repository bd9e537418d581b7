package router

import (
	"net/http"

	"cur8tr/internal/rest"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Guards bundles the auth middlewares routes pick from.
type Guards struct {
	AuthRequired echo.MiddlewareFunc
	AuthOptional echo.MiddlewareFunc
	AdminOnly    echo.MiddlewareFunc
}

func SetupHealthRoutes(e *echo.Echo, api *echo.Group) {
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, g Guards) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout, g.AuthRequired)
	auth.GET("/user", handler.GetCurrentUser, g.AuthRequired)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, g Guards) {
	users := api.Group("/user")

	users.PATCH("/profile", handler.UpdateProfile, g.AuthRequired)
	users.GET("/:username", handler.GetUserByUsername)
	users.GET("/:userId/stats", handler.GetUserStats)

	api.GET("/users/featured", handler.GetFeaturedUsers)
	api.GET("/platform/stats", handler.GetPlatformStats)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, g Guards) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetCategories, g.AuthOptional)
	categories.POST("", handler.CreateCategory, g.AuthRequired)
	categories.DELETE("/:id", handler.DeleteCategory, g.AuthRequired)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, g Guards) {
	recs := api.Group("/recommendations")

	recs.GET("", handler.GetRecommendations, g.AuthOptional)
	recs.GET("/pro-tips", handler.GetProTips)
	recs.GET("/:id", handler.GetRecommendation, g.AuthOptional)
	recs.POST("", handler.CreateRecommendation, g.AuthRequired)
	recs.PATCH("/:id", handler.UpdateRecommendation, g.AuthRequired)
	recs.DELETE("/:id", handler.DeleteRecommendation, g.AuthRequired)

	api.GET("/tags", handler.GetTags)
}

func SetupFeedRoutes(api *echo.Group, handler *rest.FeedHandler, g Guards) {
	api.GET("/activity-feed", handler.GetActivityFeed, g.AuthOptional)
}

// SetupMapRoutes rate limits search per client IP since each free-text query
// may reach the external geocoder.
func SetupMapRoutes(api *echo.Group, handler *rest.MapHandler, g Guards, ratePerSec float64) {
	limiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(ratePerSec)))

	api.GET("/map/search", handler.Search, limiter, g.AuthOptional)
}

func SetupCommentRoutes(api *echo.Group, handler *rest.CommentHandler, g Guards) {
	comments := api.Group("/comments")

	comments.GET("/:recommendationId", handler.GetComments, g.AuthOptional)
	comments.POST("", handler.CreateComment, g.AuthRequired)
}

func SetupSocialRoutes(api *echo.Group, handler *rest.SocialHandler, g Guards) {
	api.POST("/follow/:userId", handler.Follow, g.AuthRequired)
	api.DELETE("/follow/:userId", handler.Unfollow, g.AuthRequired)
	api.GET("/follow/:userId/status", handler.IsFollowing, g.AuthRequired)

	api.POST("/like/:recommendationId", handler.Like, g.AuthRequired)
	api.DELETE("/like/:recommendationId", handler.Unlike, g.AuthRequired)
	api.GET("/likes", handler.GetLikes, g.AuthOptional)
}

func SetupCuratorRoutes(api *echo.Group, handler *rest.CuratorHandler, g Guards) {
	curator := api.Group("/curator-recs")

	curator.GET("", handler.GetCuratorRecs)
	curator.GET("/ids", handler.GetCuratorRecIDs, g.AuthRequired, g.AdminOnly)
	curator.POST("/:recommendationId", handler.AddCuratorRec, g.AuthRequired, g.AdminOnly)
	curator.DELETE("/:recommendationId", handler.RemoveCuratorRec, g.AuthRequired, g.AdminOnly)
}

func SetupAdminRecommendRoutes(api *echo.Group, handler *rest.AdminRecommendHandler, g Guards) {
	cards := api.Group("/admin-recommends")

	cards.GET("", handler.GetAdminRecommends)
	cards.GET("/:id", handler.GetAdminRecommend)
	cards.POST("", handler.CreateAdminRecommend, g.AuthRequired, g.AdminOnly)
	cards.PATCH("/:id", handler.UpdateAdminRecommend, g.AuthRequired, g.AdminOnly)
	cards.DELETE("/:id", handler.DeleteAdminRecommend, g.AuthRequired, g.AdminOnly)
	cards.POST("/:id/toggle-visibility", handler.ToggleVisibility, g.AuthRequired, g.AdminOnly)
}

func SetupSectionRoutes(api *echo.Group, handler *rest.SectionHandler, g Guards) {
	sections := api.Group("/sections")

	sections.GET("", handler.GetSections)
	sections.GET("/with-recommendations", handler.GetSectionsWithRecommendations)
	sections.GET("/:id", handler.GetSection)
	sections.POST("", handler.CreateSection, g.AuthRequired, g.AdminOnly)
	sections.PATCH("/:id", handler.UpdateSection, g.AuthRequired, g.AdminOnly)
	sections.DELETE("/:id", handler.DeleteSection, g.AuthRequired, g.AdminOnly)
	sections.POST("/:sectionId/recommendations/:recommendationId", handler.AddRecommendation, g.AuthRequired, g.AdminOnly)
	sections.DELETE("/:sectionId/recommendations/:recommendationId", handler.RemoveRecommendation, g.AuthRequired, g.AdminOnly)
}

func SetupSettingRoutes(api *echo.Group, handler *rest.SettingHandler, g Guards) {
	api.GET("/settings/:key", handler.GetSetting)
	api.POST("/settings", handler.SetSetting, g.AuthRequired, g.AdminOnly)
}
