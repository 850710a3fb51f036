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

	"andaMarket/app/echo-server/router"
	"andaMarket/business/feed"
	productService "andaMarket/business/product"
	"andaMarket/internal/middleware"
	psqlRepo "andaMarket/internal/repository/postgres"
	redisRepo "andaMarket/internal/repository/redis"
	"andaMarket/internal/rest"
	"andaMarket/pkg/config"
	"andaMarket/pkg/database"
	redisdb "andaMarket/pkg/database/redis"
	"andaMarket/pkg/logger"
	"andaMarket/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Anda Market feed service", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	campaignRepo := psqlRepo.NewCampaignRepository(db)

	// Preference store: Redis when reachable, in-process fallback otherwise.
	var prefStore feed.UserPreferenceStore
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, using in-memory preference store", "error", err)
		prefStore = feed.NewMemoryPreferenceStore()
	} else {
		defer redisdb.CloseRedisClient(redisClient)
		prefStore = redisRepo.NewPreferenceRepository(redisClient)
	}

	// Init service
	feedCfg := feed.DefaultServiceConfig()
	feedCfg.Pagination = feed.PaginationConfig{
		ProductsPerCarousel: cfg.Feed.ProductsPerCarousel,
		CarouselsPerLoad:    cfg.Feed.CarouselsPerLoad,
	}
	feedCfg.OptimalStock = cfg.Feed.OptimalStock
	feedCfg.CostRatio = cfg.Feed.CostRatio
	applyWeightOverrides(&feedCfg, cfg.Feed)

	feedSvc := feed.NewFeedService(productRepo, campaignRepo, prefStore, feedCfg, nil)
	productSvc := productService.NewProductService(productRepo)

	// Init handler
	feedHandler := rest.NewFeedHandler(feedSvc)
	productHandler := rest.NewProductHandler(productSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetFeedRoutes(api, feedHandler)
	router.SetupProductRoutes(api, productHandler)

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

func applyWeightOverrides(svcCfg *feed.ServiceConfig, fc config.FeedConfig) {
	w := &svcCfg.Weights
	if fc.WSalesVelocity > 0 {
		w.SalesVelocity = fc.WSalesVelocity
	}
	if fc.WRatingQuality > 0 {
		w.RatingQuality = fc.WRatingQuality
	}
	if fc.WEngagementRate > 0 {
		w.EngagementRate = fc.WEngagementRate
	}
	if fc.WProfitMargin > 0 {
		w.ProfitMargin = fc.WProfitMargin
	}
	if fc.WStockScore > 0 {
		w.StockScore = fc.WStockScore
	}
	if fc.WFreshnessScore > 0 {
		w.FreshnessScore = fc.WFreshnessScore
	}
	if fc.WCampaignBoost > 0 {
		w.CampaignBoost = fc.WCampaignBoost
	}
}
