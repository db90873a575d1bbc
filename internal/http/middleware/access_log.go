package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// AccessLogMiddleware records rejected attempts against single activities in
// the activity log, so refusals are visible next to the mutations they
// guarded. Successful requests pass through untouched.
type AccessLogMiddleware struct {
	logSvc *service.ActivityLogService
	logger *zap.Logger
}

// NewAccessLogMiddleware creates a new access log middleware
func NewAccessLogMiddleware(logSvc *service.ActivityLogService, logger *zap.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{
		logSvc: logSvc,
		logger: logger,
	}
}

// Watch captures forbidden responses on routes that address a single
// activity and writes an access_denied entry to its trail.
func (m *AccessLogMiddleware) Watch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		if rw.statusCode != http.StatusForbidden {
			return
		}

		activityID, ok := m.activityIDFromRoute(r)
		if !ok {
			return
		}

		if err := m.logSvc.LogAccessDenied(r.Context(), r, activityID); err != nil {
			m.logger.Warn("failed to record denied access",
				zap.String("activity_id", activityID.String()),
				zap.String("path", r.URL.Path),
				zap.Error(err))
		}
	})
}

// activityIDFromRoute extracts the activity id when the matched route
// addresses exactly one activity
func (m *AccessLogMiddleware) activityIDFromRoute(r *http.Request) (uuid.UUID, bool) {
	if !strings.Contains(r.URL.Path, "/activities/") {
		return uuid.Nil, false
	}

	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return uuid.Nil, false
	}

	idStr := routeCtx.URLParam("id")
	if idStr == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// responseCapture wraps ResponseWriter to observe the final status code
type responseCapture struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseCapture) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
