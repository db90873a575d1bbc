package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/config"
	"github.com/meridian-crm/monitor-api/internal/database"
	"github.com/meridian-crm/monitor-api/internal/http/handler"
	"github.com/meridian-crm/monitor-api/internal/http/middleware"
	"github.com/meridian-crm/monitor-api/internal/warehouse"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/meridian-crm/monitor-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	warehouseClient     *warehouse.Client
	authMiddleware      *auth.Middleware
	scopeMiddleware     *middleware.ScopeMiddleware
	rateLimiter         *middleware.RateLimiter
	accessLogMiddleware *middleware.AccessLogMiddleware
	authHandler         *handler.AuthHandler
	orgHandler          *handler.OrgHandler
	activityHandler     *handler.ActivityHandler
	reportHandler       *handler.ReportHandler
	reminderHandler     *handler.ReminderHandler
	logHandler          *handler.ActivityLogHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	warehouseClient *warehouse.Client,
	authMiddleware *auth.Middleware,
	scopeMiddleware *middleware.ScopeMiddleware,
	rateLimiter *middleware.RateLimiter,
	accessLogMiddleware *middleware.AccessLogMiddleware,
	authHandler *handler.AuthHandler,
	orgHandler *handler.OrgHandler,
	activityHandler *handler.ActivityHandler,
	reportHandler *handler.ReportHandler,
	reminderHandler *handler.ReminderHandler,
	logHandler *handler.ActivityLogHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		warehouseClient:     warehouseClient,
		authMiddleware:      authMiddleware,
		scopeMiddleware:     scopeMiddleware,
		rateLimiter:         rateLimiter,
		accessLogMiddleware: accessLogMiddleware,
		authHandler:         authHandler,
		orgHandler:          orgHandler,
		activityHandler:     activityHandler,
		reportHandler:       reportHandler,
		reminderHandler:     reminderHandler,
		logHandler:          logHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check. The warehouse mirror is optional, so a
	// degraded warehouse is reported but does not fail readiness.
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		checks["warehouse"] = rt.warehouseClient.HealthCheck(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.scopeMiddleware.Resolve)
		r.Use(rt.accessLogMiddleware.Watch)

		// Auth
		r.Get("/auth/me", rt.authHandler.Me)
		r.Get("/auth/scope", rt.authHandler.Scope)

		// Organization views
		r.Route("/org", func(r chi.Router) {
			r.Get("/teams", rt.orgHandler.ListTeams)
			r.Get("/groups", rt.orgHandler.ListGroups)
			r.Get("/groups/{id}", rt.orgHandler.GetGroup)
		})

		// Activities
		r.Route("/activities", func(r chi.Router) {
			r.Get("/", rt.activityHandler.List)
			r.Post("/", rt.activityHandler.Create)
			r.Get("/upcoming", rt.activityHandler.GetUpcoming)
			r.Post("/bulk", rt.activityHandler.Bulk)
			r.Get("/{id}", rt.activityHandler.GetByID)
			r.Put("/{id}", rt.activityHandler.Update)
			r.Delete("/{id}", rt.activityHandler.Delete)
			r.Get("/{id}/log", rt.activityHandler.GetTrail)
			r.Get("/{id}/download", rt.activityHandler.Download)

			// Lifecycle operations
			r.Post("/{id}/start", rt.activityHandler.Start)
			r.Post("/{id}/complete", rt.activityHandler.Complete)
			r.Post("/{id}/cancel", rt.activityHandler.Cancel)
			r.Post("/{id}/postpone", rt.activityHandler.Postpone)
			r.Post("/{id}/reopen", rt.activityHandler.Reopen)
			r.Post("/{id}/review", rt.activityHandler.Review)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", rt.reportHandler.Summary)
			r.Get("/insights", rt.reportHandler.Insights)
			r.Post("/snapshots", rt.reportHandler.CreateSnapshot)
			r.Get("/snapshots", rt.reportHandler.ListSnapshots)
			r.Get("/snapshots/{id}", rt.reportHandler.GetSnapshot)
			r.Get("/snapshots/{id}/download", rt.reportHandler.DownloadSnapshot)
		})

		// Reminders
		r.Get("/reminders", rt.reminderHandler.List)

		// Cross-activity log queries (admin only)
		r.Route("/logs", func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAdmin)
			r.Get("/", rt.logHandler.List)
			r.Get("/stats", rt.logHandler.GetStats)
		})
	})

	return r
}
