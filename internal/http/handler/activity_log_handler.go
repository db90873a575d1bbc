package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// ActivityLogHandler serves the cross-activity log query surface. Routes
// using it sit behind the admin gate; the per-activity trail is served by
// the activity handler instead.
type ActivityLogHandler struct {
	logService *service.ActivityLogService
	logger     *zap.Logger
}

func NewActivityLogHandler(logService *service.ActivityLogService, logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		logService: logService,
		logger:     logger,
	}
}

// LogStatsResponse reports per-action entry counts for a time range
type LogStatsResponse struct {
	ActionCounts map[string]int64 `json:"actionCounts"`
	StartTime    string           `json:"startTime"`
	EndTime      string           `json:"endTime"`
}

// List godoc
// @Summary Query the activity log
// @Description Returns a paginated list of activity log entries across all activities, with optional filters
// @Tags Logs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param actorId query string false "Filter by acting user ID" format(uuid)
// @Param activityId query string false "Filter by activity ID" format(uuid)
// @Param action query string false "Filter by action (created, updated, status_changed, reviewed, bulk_updated, viewed, downloaded, deleted, access_denied)"
// @Param startTime query string false "Entries performed at or after this time (RFC3339)"
// @Param endTime query string false "Entries performed before this time (RFC3339)"
// @Param mutationsOnly query bool false "Only entries that changed data"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ActivityLogEntryDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /logs [get]
func (h *ActivityLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := parseIntQuery(r, "pageSize", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	params := service.LogQueryParams{
		Page:     page,
		PageSize: pageSize,
	}

	if actorIDStr := r.URL.Query().Get("actorId"); actorIDStr != "" {
		actorID, err := uuid.Parse(actorIDStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid actorId format, must be a valid UUID")
			return
		}
		params.ActorID = &actorID
	}

	if activityIDStr := r.URL.Query().Get("activityId"); activityIDStr != "" {
		activityID, err := uuid.Parse(activityIDStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid activityId format, must be a valid UUID")
			return
		}
		params.ActivityID = &activityID
	}

	if actionStr := r.URL.Query().Get("action"); actionStr != "" {
		action := domain.LogAction(actionStr)
		params.Action = &action
	}

	if startStr := r.URL.Query().Get("startTime"); startStr != "" {
		startTime, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid startTime format, expected RFC3339")
			return
		}
		params.StartTime = &startTime
	}

	if endStr := r.URL.Query().Get("endTime"); endStr != "" {
		endTime, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid endTime format, expected RFC3339")
			return
		}
		params.EndTime = &endTime
	}

	if mutStr := r.URL.Query().Get("mutationsOnly"); mutStr != "" {
		mutationsOnly, err := strconv.ParseBool(mutStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid 'mutationsOnly' value, expected true or false")
			return
		}
		params.MutationsOnly = mutationsOnly
	}

	entries, total, err := h.logService.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list activity log entries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve log entries")
		return
	}

	dtos := make([]domain.ActivityLogEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = mapper.ToActivityLogEntryDTO(&entry)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetStats godoc
// @Summary Get activity log statistics
// @Description Returns per-action entry counts for a time range
// @Tags Logs
// @Produce json
// @Param startTime query string true "Start time (RFC3339)"
// @Param endTime query string true "End time (RFC3339)"
// @Success 200 {object} LogStatsResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /logs/stats [get]
func (h *ActivityLogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startTime")
	endStr := r.URL.Query().Get("endTime")

	if startStr == "" || endStr == "" {
		respondWithError(w, http.StatusBadRequest, "startTime and endTime are required")
		return
	}

	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid startTime format, expected RFC3339")
		return
	}

	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid endTime format, expected RFC3339")
		return
	}

	stats, err := h.logService.GetStats(r.Context(), startTime, endTime)
	if err != nil {
		h.logger.Error("failed to get activity log stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}

	actionCounts := make(map[string]int64)
	for action, count := range stats {
		actionCounts[string(action)] = count
	}

	respondJSON(w, http.StatusOK, LogStatsResponse{
		ActionCounts: actionCounts,
		StartTime:    startTime.Format(time.RFC3339),
		EndTime:      endTime.Format(time.RFC3339),
	})
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
