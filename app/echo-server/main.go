package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cur8tr/app/echo-server/metrics"
	"cur8tr/app/echo-server/router"
	"cur8tr/business/adminrecommend"
	"cur8tr/business/category"
	"cur8tr/business/comment"
	"cur8tr/business/curator"
	"cur8tr/business/feed"
	"cur8tr/business/geo"
	"cur8tr/business/recommendation"
	"cur8tr/business/section"
	"cur8tr/business/setting"
	"cur8tr/business/social"
	userService "cur8tr/business/user"
	"cur8tr/internal/middleware"
	"cur8tr/internal/repository/geocoding"
	psqlRepo "cur8tr/internal/repository/postgres"
	redisRepo "cur8tr/internal/repository/redis"
	"cur8tr/internal/rest"
	"cur8tr/pkg/config"
	"cur8tr/pkg/database"
	redisClient "cur8tr/pkg/database/redis"
	"cur8tr/pkg/logger"
	domainMetrics "cur8tr/pkg/metrics"
	"cur8tr/pkg/serializer"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Cur8tr", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisClient.CloseRedisClient(rdb); err != nil {
			logger.Error("Failed to close Redis", "error", err)
		}
	}()

	domainMetrics.Init()
	metrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	recommendationRepo := psqlRepo.NewRecommendationRepository(db)
	tagRepo := psqlRepo.NewTagRepository(db)
	followRepo := psqlRepo.NewFollowRepository(db)
	likeRepo := psqlRepo.NewLikeRepository(db)
	commentRepo := psqlRepo.NewCommentRepository(db)
	curatorRepo := psqlRepo.NewCuratorRepository(db)
	adminRecommendRepo := psqlRepo.NewAdminRecommendRepository(db)
	sectionRepo := psqlRepo.NewSectionRepository(db)
	settingRepo := psqlRepo.NewSettingRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)

	// Geocoder: redis cache in front of a circuit-broken nominatim client
	geocoder := geocoding.NewCachedGeocoder(
		redisRepo.NewGeocodeCache(rdb, cfg.Map.GeocodeCacheTTL),
		geocoding.NewBreakerGeocoder(
			geocoding.NewNominatimRepository(geocoding.NominatimConfig{
				BaseURL:   cfg.Map.GeocoderURL,
				UserAgent: cfg.Map.GeocoderUserAgent,
			}),
			geocoding.DefaultBreakerConfig(),
		),
	)

	// Init service
	userService := userService.NewUserService(userRepo, tokenRepo, validate, cfg.JWT.TTL)
	categoryService := category.NewCategoryService(categoryRepo)
	recommendationService := recommendation.NewRecommendationService(recommendationRepo, tagRepo, validate)
	socialService := social.NewSocialService(followRepo, likeRepo, userRepo, recommendationRepo)
	commentService := comment.NewCommentService(commentRepo, recommendationRepo)
	curatorService := curator.NewCuratorService(curatorRepo, recommendationRepo)
	adminRecommendService := adminrecommend.NewAdminRecommendService(adminRecommendRepo, sectionRepo, validate)
	sectionService := section.NewSectionService(sectionRepo, adminRecommendRepo, recommendationRepo, validate)
	settingService := setting.NewSettingService(settingRepo)
	feedService := feed.NewFeedService(recommendationRepo, followRepo, feed.Config{
		SocialLimit:    cfg.Feed.SocialLimit,
		CommunityLimit: cfg.Feed.CommunityLimit,
		DefaultLimit:   cfg.Feed.DefaultLimit,
	})
	radiusService := geo.NewRadiusService(recommendationRepo, geocoder)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService, socialService, userService, categoryService)
	feedHandler := rest.NewFeedHandler(feedService, socialService)
	mapHandler := rest.NewMapHandler(radiusService, socialService, cfg.Map.DefaultRadiusMiles)
	commentHandler := rest.NewCommentHandler(commentService)
	socialHandler := rest.NewSocialHandler(socialService)
	curatorHandler := rest.NewCuratorHandler(curatorService)
	adminRecommendHandler := rest.NewAdminRecommendHandler(adminRecommendService)
	sectionHandler := rest.NewSectionHandler(sectionService)
	settingHandler := rest.NewSettingHandler(settingService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = serializer.JSONSerializer{}

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))
	e.Use(metrics.Middleware())

	guards := router.Guards{
		AuthRequired: middleware.AuthMiddlewareWithRedis(userService),
		AuthOptional: middleware.OptionalAuth(userService),
		AdminOnly:    middleware.AdminOnly(),
	}

	// Setup routes
	api := e.Group("/api")
	router.SetupHealthRoutes(e, api)
	router.SetupAuthRoutes(api, userHandler, guards)
	router.SetupUserRoutes(api, userHandler, guards)
	router.SetupCategoryRoutes(api, categoryHandler, guards)
	router.SetupRecommendationRoutes(api, recommendationHandler, guards)
	router.SetupFeedRoutes(api, feedHandler, guards)
	router.SetupMapRoutes(api, mapHandler, guards, cfg.Map.SearchRatePerSec)
	router.SetupCommentRoutes(api, commentHandler, guards)
	router.SetupSocialRoutes(api, socialHandler, guards)
	router.SetupCuratorRoutes(api, curatorHandler, guards)
	router.SetupAdminRecommendRoutes(api, adminRecommendHandler, guards)
	router.SetupSectionRoutes(api, sectionHandler, guards)
	router.SetupSettingRoutes(api, settingHandler, guards)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
