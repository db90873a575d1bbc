package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian-crm/monitor-api/docs"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/config"
	"github.com/meridian-crm/monitor-api/internal/database"
	"github.com/meridian-crm/monitor-api/internal/http/handler"
	"github.com/meridian-crm/monitor-api/internal/http/middleware"
	"github.com/meridian-crm/monitor-api/internal/http/router"
	"github.com/meridian-crm/monitor-api/internal/jobs"
	"github.com/meridian-crm/monitor-api/internal/logger"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/meridian-crm/monitor-api/internal/storage"
	"github.com/meridian-crm/monitor-api/internal/warehouse"
	"go.uber.org/zap"
)

// @title Meridian Sales Monitor API
// @version 1.0
// @description Activity monitoring API for sales organizations: scoped activity tracking, lifecycle management, reporting and insights
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@meridian-crm.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "monitor-staging.meridian-crm.io"
	case "production":
		docs.SwaggerInfo.Host = "monitor.meridian-crm.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize snapshot document storage
	snapshotStore, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Connect to the pipeline warehouse (optional, read-only mirror source).
	// The app runs without it; revenue metrics then come up empty.
	warehouseClient, err := warehouse.NewClient(&cfg.Warehouse, log)
	if err != nil {
		log.Warn("Pipeline warehouse connection failed, continuing without it",
			zap.Error(err),
		)
		warehouseClient = nil
	} else if warehouseClient != nil {
		log.Info("Pipeline warehouse connected",
			zap.Int("max_open_conns", cfg.Warehouse.MaxOpenConns),
			zap.Int("query_timeout_seconds", cfg.Warehouse.QueryTimeout),
		)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	pipelineRepo := repository.NewPipelineRepository(db)
	snapshotRepo := repository.NewReportSnapshotRepository(db)

	// Initialize services
	logService := service.NewActivityLogService(activityLogRepo, log)
	activityService := service.NewActivityService(activityRepo, orgRepo, userRepo, reminderRepo, logService, log, db)
	orgService := service.NewOrgService(orgRepo, log)
	aggregationService := service.NewAggregationService(activityRepo, pipelineRepo, orgRepo, userRepo, cfg.Insights.DefaultMonthlyTarget, log)
	insightService := service.NewInsightService(cfg.Insights, log)
	reportService := service.NewReportService(aggregationService, insightService, snapshotRepo, snapshotStore, log)
	reminderService := service.NewReminderService(
		reminderRepo,
		activityRepo,
		time.Duration(cfg.Jobs.ReminderUpcomingLeadHours)*time.Hour,
		time.Duration(cfg.Jobs.ReminderReviewAgeHours)*time.Hour,
		log,
	)
	pipelineSyncService := service.NewPipelineSyncService(warehouseClient, pipelineRepo, userRepo, orgRepo, log)

	// Initialize middleware
	scopeResolver := scope.NewResolver(orgRepo, log)
	authMiddleware := auth.NewMiddleware(cfg, userRepo, log)
	scopeMiddleware := middleware.NewScopeMiddleware(scopeResolver, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	accessLogMiddleware := middleware.NewAccessLogMiddleware(logService, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, log)
	orgHandler := handler.NewOrgHandler(orgService, log)
	activityHandler := handler.NewActivityHandler(activityService, logService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	reminderHandler := handler.NewReminderHandler(reminderService, log)
	logHandler := handler.NewActivityLogHandler(logService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		warehouseClient,
		authMiddleware,
		scopeMiddleware,
		rateLimiter,
		accessLogMiddleware,
		authHandler,
		orgHandler,
		activityHandler,
		reportHandler,
		reminderHandler,
		logHandler,
	)

	// Initialize and start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)

	if err := jobs.RegisterReminderJob(scheduler, reminderService, log, cfg.Jobs.ReminderCron); err != nil {
		log.Error("Failed to register reminder scan job", zap.Error(err))
	}

	if warehouseClient != nil && warehouseClient.IsEnabled() {
		if err := jobs.RegisterWarehouseSyncJob(
			scheduler,
			pipelineSyncService,
			log,
			cfg.Jobs.WarehouseSyncCron,
			cfg.Jobs.WarehouseSyncTimeoutDuration(),
			cfg.Jobs.WarehouseStartupSync,
		); err != nil {
			log.Error("Failed to register warehouse sync job", zap.Error(err))
		}
	} else {
		log.Info("Warehouse sync job not registered",
			zap.Bool("warehouse_enabled", cfg.Warehouse.Enabled),
			zap.Bool("client_available", warehouseClient != nil),
		)
	}

	scheduler.Start()
	log.Info("Scheduler started",
		zap.String("reminder_cron", cfg.Jobs.ReminderCron),
		zap.String("warehouse_sync_cron", cfg.Jobs.WarehouseSyncCron),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler and wait for running jobs to finish
		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close warehouse connection if initialized
		if warehouseClient != nil {
			if err := warehouseClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
