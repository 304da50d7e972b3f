package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gereja-member-api/api/swagger"
	"github.com/noah-isme/gereja-member-api/internal/handler"
	"github.com/noah-isme/gereja-member-api/internal/middleware"
	"github.com/noah-isme/gereja-member-api/internal/repository"
	"github.com/noah-isme/gereja-member-api/internal/service"
	"github.com/noah-isme/gereja-member-api/pkg/cache"
	"github.com/noah-isme/gereja-member-api/pkg/config"
	"github.com/noah-isme/gereja-member-api/pkg/database"
	"github.com/noah-isme/gereja-member-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gereja-member-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gereja-member-api/pkg/middleware/requestid"
)

// @title Gereja Member API
// @version 0.1.0
// @description Member-facing congregation services: unified calendar, upcoming events, exports
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Calendar.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, calendar cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	personalRepo := repository.NewPersonalEntryRepository(db)
	studyRepo := repository.NewMorningStudyRepository(db)
	homecellRepo := repository.NewHomecellRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	calendarSvc := service.NewCalendarService(service.CalendarServiceParams{
		Congregation:         eventRepo,
		Personal:             personalRepo,
		MorningStudy:         studyRepo,
		Homecells:            homecellRepo,
		CongregationUpcoming: eventRepo,
		PersonalUpcoming:     personalRepo,
		Cache:                cacheSvc,
		Logger:               logr,
		Metrics:              metricsSvc,
		Config:               cfg.Calendar,
	})

	exportSvc := service.NewExportService(calendarSvc, service.NewDateRangeResolver(), logr)

	authHandler := handler.NewAuthHandler(authSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/calendar", calendarHandler.View)
	authed.GET("/calendar/range", calendarHandler.Range)
	authed.GET("/calendar/upcoming", calendarHandler.Upcoming)
	if cfg.Export.Enabled {
		authed.GET("/calendar/export", exportHandler.Month)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
