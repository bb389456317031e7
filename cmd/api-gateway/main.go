package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sukanyaghosh74/sstudize-task/api/swagger"
	"github.com/sukanyaghosh74/sstudize-task/internal/catalog"
	"github.com/sukanyaghosh74/sstudize-task/internal/handler"
	"github.com/sukanyaghosh74/sstudize-task/internal/middleware"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	"github.com/sukanyaghosh74/sstudize-task/internal/repository"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	"github.com/sukanyaghosh74/sstudize-task/pkg/cache"
	"github.com/sukanyaghosh74/sstudize-task/pkg/config"
	"github.com/sukanyaghosh74/sstudize-task/pkg/database"
	"github.com/sukanyaghosh74/sstudize-task/pkg/jobs"
	"github.com/sukanyaghosh74/sstudize-task/pkg/logger"
	corsmiddleware "github.com/sukanyaghosh74/sstudize-task/pkg/middleware/cors"
	reqidmiddleware "github.com/sukanyaghosh74/sstudize-task/pkg/middleware/requestid"
	"github.com/sukanyaghosh74/sstudize-task/pkg/storage"
)

// @title Study Roadmap API
// @version 1.0.0
// @description Personalized study roadmap generation, monitoring, and review workflow
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	catalogs, err := catalog.Load(cfg.Catalog.ExamTrendsFile, cfg.Catalog.LearningResourcesFile, logr)
	if err != nil {
		logr.Fatal("failed to load catalogs", zap.Error(err))
	}

	// DB-provisioned catalogs take precedence over the file-based ones.
	catalogRepo := repository.NewCatalogRepository(db)
	if trends, err := catalogRepo.ListExamTrends(context.Background()); err != nil {
		logr.Warn("exam trend table unavailable, using file catalog", zap.Error(err))
	} else if len(trends) > 0 {
		catalogs.ExamTrends = trends
	}
	if resources, err := catalogRepo.ListLearningResources(context.Background()); err != nil {
		logr.Warn("learning resource table unavailable, using file catalog", zap.Error(err))
	} else if len(resources) > 0 {
		catalogs.LearningResources = resources
	}

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Roadmap.CacheTTL, logr, true)
	} else {
		cacheService = service.NewCacheService(nil, metricsService, 0, logr, false)
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	reportRepo := repository.NewReportRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)
	registryRepo := repository.NewRegistryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
	})
	studentService := service.NewStudentService(studentRepo, nil, logr)
	roadmapService := service.NewRoadmapService(studentRepo, roadmapRepo, catalogs, cacheService, metricsService, logr, service.RoadmapServiceConfig{
		DefaultDurationWeeks: cfg.Roadmap.DefaultDurationWeeks,
		CacheTTL:             cfg.Roadmap.CacheTTL,
	})
	monitoringService := service.NewMonitoringService(studentRepo, roadmapRepo, reportRepo, cacheService, metricsService, logr, service.MonitoringServiceConfig{
		CacheTTL:       cfg.Monitoring.CacheTTL,
		RecentReports:  cfg.Monitoring.RecentReports,
		LookbackDays:   cfg.Monitoring.LookbackDays,
		EscalationTrip: cfg.Monitoring.EscalationTrip,
	})

	notificationService := service.NewNotificationService(notificationRepo, &service.LogMailer{Logger: logr}, logr, cfg.Notifications.Enabled, jobs.QueueConfig{
		Workers:    cfg.Notifications.WorkerConcurrency,
		MaxRetries: cfg.Notifications.WorkerRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})

	registryService := service.NewRegistryService(registryRepo, nil, logr)
	workflowService := service.NewWorkflowService(workflowRepo, registryService, service.NewKeywordConflictDetector(), notificationService, nil, metricsService, logr)
	dashboardService := service.NewDashboardService(registryService, workflowService, notificationService, logr)

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		localStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("failed to init export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportService = service.NewExportService(roadmapRepo, localStorage, signer, logr)

		go func() {
			ticker := time.NewTicker(cfg.Exports.CleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				if removed, err := exportService.Cleanup(cfg.Exports.SignedURLTTL); err != nil {
					logr.Warn("export cleanup failed", zap.Error(err))
				} else if len(removed) > 0 {
					logr.Info("expired exports removed", zap.Int("count", len(removed)))
				}
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationService.Start(ctx)
	defer notificationService.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	metricsHandler := handler.NewMetricsHandler(metricsService)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService)
	roadmapHandler := handler.NewRoadmapHandler(roadmapService, exportService)
	monitoringHandler := handler.NewMonitoringHandler(monitoringService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	registryHandler := handler.NewRegistryHandler(registryService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWT(authService), authHandler.Me)

	students := api.Group("/students", middleware.JWT(authService))
	students.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), studentHandler.Create)
	students.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), string(models.RoleParent), "SELF"), studentHandler.Get)
	students.POST("/:id/performance", middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), "SELF"), studentHandler.RecordPerformance)
	students.POST("/:id/habits", middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), "SELF"), studentHandler.RecordHabit)

	roadmaps := api.Group("/roadmaps", middleware.JWT(authService))
	roadmaps.POST("", roadmapHandler.Generate)
	roadmaps.GET("/latest", roadmapHandler.Latest)
	roadmaps.GET("/:id", roadmapHandler.Get)
	roadmaps.POST("/:id/replan", roadmapHandler.Replan)
	roadmaps.PATCH("/:id/tasks/:taskId", roadmapHandler.UpdateTaskStatus)
	if exportService != nil {
		roadmaps.GET("/:id/export", roadmapHandler.Export)
		// Redeemed with the signed token from the export response, no JWT.
		api.GET("/exports/:token", roadmapHandler.DownloadExport)
	}

	monitoring := api.Group("/monitoring", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	monitoring.POST("/reports", monitoringHandler.GenerateReport)
	monitoring.GET("/reports", monitoringHandler.RecentReports)
	monitoring.GET("/agents", monitoringHandler.AgentStatus)
	monitoring.POST("/agents/:id/toggle", monitoringHandler.ToggleAgent)

	if cfg.Workflow.Enabled {
		workflows := api.Group("/workflows", middleware.JWT(authService))
		workflows.POST("", workflowHandler.SubmitForReview)
		workflows.GET("/pending", workflowHandler.Pending)
		workflows.GET("/:id", workflowHandler.Status)
		workflows.POST("/:id/teacher-feedback", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), workflowHandler.TeacherFeedback)
		workflows.POST("/:id/parent-feedback", middleware.RequireRoles(models.RoleAdmin, models.RoleParent), workflowHandler.ParentFeedback)
	}

	registry := api.Group("/registry", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	registry.POST("/teachers", registryHandler.RegisterTeacher)
	registry.POST("/parents", registryHandler.RegisterParent)

	dashboard := api.Group("/dashboard", middleware.JWT(authService))
	dashboard.GET("/teachers/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), dashboardHandler.Teacher)
	dashboard.GET("/parents/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleParent), dashboardHandler.Parent)

	notifications := api.Group("/notifications", middleware.JWT(authService))
	notifications.GET("", notificationHandler.List)
	notifications.POST("/:id/read", notificationHandler.MarkRead)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown incomplete", zap.Error(err))
	}
}
