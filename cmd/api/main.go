package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lehrteam/stundenplan-api/api/swagger"
	"github.com/lehrteam/stundenplan-api/internal/handler"
	"github.com/lehrteam/stundenplan-api/internal/middleware"
	"github.com/lehrteam/stundenplan-api/internal/realtime"
	"github.com/lehrteam/stundenplan-api/internal/repository"
	"github.com/lehrteam/stundenplan-api/internal/service"
	"github.com/lehrteam/stundenplan-api/internal/store"
	"github.com/lehrteam/stundenplan-api/pkg/cache"
	"github.com/lehrteam/stundenplan-api/pkg/config"
	"github.com/lehrteam/stundenplan-api/pkg/database"
	"github.com/lehrteam/stundenplan-api/pkg/export"
	"github.com/lehrteam/stundenplan-api/pkg/logger"
	corsmiddleware "github.com/lehrteam/stundenplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lehrteam/stundenplan-api/pkg/middleware/requestid"
)

// @title Stundenplan API
// @version 0.1.0
// @description Weekly team availability planner with live change feed
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	broker := realtime.NewRedisBroker(redisClient, logr)

	personRepo := repository.NewPersonRepository(db, broker)
	availabilityRepo := repository.NewAvailabilityRepository(db, broker)
	assignmentRepo := repository.NewAssignmentRepository(db, broker)

	peopleStore := store.NewPeopleStore(personRepo, broker, logr)
	availabilityStore := store.NewAvailabilityStore(availabilityRepo, broker, logr)
	assignmentStore := store.NewAssignmentStore(assignmentRepo, broker, logr)
	defer availabilityStore.Close()
	defer assignmentStore.Close()
	defer peopleStore.Unsubscribe()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 15*time.Second)
	peopleStore.Load(startupCtx)
	peopleStore.Subscribe(startupCtx)
	startupCancel()

	planSvc := service.NewPlanService(peopleStore, availabilityStore, assignmentStore, logr)
	exportSvc := service.NewExportService(peopleStore, availabilityStore, export.NewXLSXExporter(), export.NewPDFExporter(), logr)
	metricsSvc := service.NewMetricsService()

	validate := validator.New()

	personHandler := handler.NewPersonHandler(peopleStore, validate)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityStore, validate)
	assignmentHandler := handler.NewAssignmentHandler(assignmentStore, validate)
	planHandler := handler.NewPlanHandler(planSvc, availabilityStore, assignmentStore)
	exportHandler := handler.NewExportHandler(exportSvc, availabilityStore)
	eventsHandler := handler.NewEventsHandler(broker, metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "database"})
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "redis"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/people", personHandler.List)
		api.POST("/people", personHandler.Create)

		weeks := api.Group("/weeks/:week")
		{
			weeks.GET("/availability", availabilityHandler.GetWeek)
			weeks.POST("/availability/toggle", availabilityHandler.Toggle)
			weeks.PUT("/availability/:personID", availabilityHandler.ReplaceWeek)

			weeks.GET("/assignments", assignmentHandler.GetWeek)
			weeks.PUT("/assignments/primary", assignmentHandler.SetPrimary)

			weeks.GET("/plan", planHandler.GetWeek)
			weeks.GET("/export/xlsx", exportHandler.XLSX)
			weeks.GET("/export/pdf", exportHandler.PDF)
			weeks.GET("/events", eventsHandler.StreamWeek)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
