package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ifcampus/meal-gateway/api/swagger"
	"github.com/ifcampus/meal-gateway/internal/gateway"
	"github.com/ifcampus/meal-gateway/internal/handler"
	"github.com/ifcampus/meal-gateway/internal/middleware"
	"github.com/ifcampus/meal-gateway/internal/repository"
	"github.com/ifcampus/meal-gateway/internal/service"
	"github.com/ifcampus/meal-gateway/pkg/cache"
	"github.com/ifcampus/meal-gateway/pkg/config"
	"github.com/ifcampus/meal-gateway/pkg/logger"
	corsmiddleware "github.com/ifcampus/meal-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/ifcampus/meal-gateway/pkg/middleware/requestid"
)

// @title Campus Meal Gateway
// @version 0.1.0
// @description Backend-for-frontend gateway for the campus meal reservation app
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Menus.CacheTTL, logr, true)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Menus.CacheTTL, logr, false)
	}

	upstream := gateway.New(cfg.Upstream, logr, metricsSvc)
	validate := validator.New()

	mealRepo := repository.NewMealRepository(upstream)
	ticketRepo := repository.NewTicketRepository(upstream)
	studentRepo := repository.NewStudentRepository(upstream)

	authSvc := service.NewAuthService(upstream, studentRepo, validate, logr, cfg.Session)
	menuSvc := service.NewMenuService(mealRepo, cacheSvc, cfg.Menus, logr)
	historySvc := service.NewHistoryService(ticketRepo, cacheSvc, cfg.History, logr)
	reservationSvc := service.NewReservationService(ticketRepo, cacheSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	menuHandler := handler.NewMenuHandler(menuSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/meals/status-legend", menuHandler.StatusLegend)

	protected := api.Group("")
	protected.Use(middleware.Session(authSvc))
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/menus", menuHandler.ListByDay)
	protected.GET("/meals/allowed", menuHandler.AllowedMeals)
	protected.GET("/tickets/history", historyHandler.Feed)
	protected.POST("/reservations", reservationHandler.Reserve)
	protected.PUT("/reservations/cancel", reservationHandler.Cancel)
	protected.PUT("/tickets/:id/justification", reservationHandler.Justify)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
