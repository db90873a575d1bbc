package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// ActivityHandler handles HTTP requests for sales activities and their
// lifecycle operations
type ActivityHandler struct {
	activityService *service.ActivityService
	logService      *service.ActivityLogService
	logger          *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(activityService *service.ActivityService, logService *service.ActivityLogService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logService:      logService,
		logger:          logger,
	}
}

// List godoc
// @Summary List activities
// @Description Get paginated list of activities visible in the caller's scope, with optional filters
// @Tags Activities
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param kind query string false "Filter by kind (call, meeting, email, proposal, task, demo, follow_up, research)"
// @Param status query string false "Filter by status (planned, in_progress, completed, cancelled, postponed)"
// @Param priority query string false "Filter by priority (low, medium, high, urgent)"
// @Param ownerId query string false "Filter by owner user ID" format(uuid)
// @Param groupId query string false "Filter by group ID" format(uuid)
// @Param from query string false "Planned start from this date (YYYY-MM-DD), inclusive"
// @Param to query string false "Planned start up to this date (YYYY-MM-DD), inclusive"
// @Param reviewed query bool false "Filter by review state"
// @Param followUpRequired query bool false "Filter by follow-up flag"
// @Param overdue query bool false "Only activities past their planned end and still open"
// @Param search query string false "Case-insensitive match on title or customer reference"
// @Param sortBy query string false "Sort field" Enums(plannedStart, plannedEnd, createdAt, updatedAt, title, kind, status, priority, ownerName)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ActivityDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}

	filter, err := h.buildListFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Parse sort configuration
	sort := repository.DefaultSortConfig()
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		sort.Field = sortBy
	}
	if sortOrder := r.URL.Query().Get("sortOrder"); sortOrder != "" {
		sort.Order = repository.ParseSortOrder(sortOrder)
	}

	result, err := h.activityService.List(r.Context(), page, pageSize, filter, sort)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list activities")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// buildListFilter translates query parameters into a repository filter
func (h *ActivityHandler) buildListFilter(r *http.Request) (*repository.ActivityFilter, error) {
	filter := &repository.ActivityFilter{}
	q := r.URL.Query()

	if kind := q.Get("kind"); kind != "" {
		k := domain.ActivityKind(kind)
		if !k.IsValid() {
			return nil, fmt.Errorf("invalid kind. Valid values: call, meeting, email, proposal, task, demo, follow_up, research")
		}
		filter.Kind = &k
	}

	if status := q.Get("status"); status != "" {
		s := domain.ActivityStatus(status)
		if !s.IsValid() {
			return nil, fmt.Errorf("invalid status. Valid values: planned, in_progress, completed, cancelled, postponed")
		}
		filter.Status = &s
	}

	if priority := q.Get("priority"); priority != "" {
		p := domain.Priority(priority)
		if !p.IsValid() {
			return nil, fmt.Errorf("invalid priority. Valid values: low, medium, high, urgent")
		}
		filter.Priority = &p
	}

	if ownerIDStr := q.Get("ownerId"); ownerIDStr != "" {
		ownerID, err := uuid.Parse(ownerIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ownerId format, must be a valid UUID")
		}
		filter.OwnerID = &ownerID
	}

	if groupIDStr := q.Get("groupId"); groupIDStr != "" {
		groupID, err := uuid.Parse(groupIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid groupId format, must be a valid UUID")
		}
		filter.GroupID = &groupID
	}

	// Date range filter for planned_start - "from" is start of day (00:00:00)
	if fromStr := q.Get("from"); fromStr != "" {
		fromDate, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' format, expected YYYY-MM-DD")
		}
		fromDate = time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, time.UTC)
		filter.PlannedFrom = &fromDate
	}

	// "to" is inclusive, so the filter boundary is the start of the next day
	if toStr := q.Get("to"); toStr != "" {
		toDate, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' format, expected YYYY-MM-DD")
		}
		toDate = time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		filter.PlannedTo = &toDate
	}

	if reviewedStr := q.Get("reviewed"); reviewedStr != "" {
		reviewed, err := strconv.ParseBool(reviewedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'reviewed' value, expected true or false")
		}
		filter.Reviewed = &reviewed
	}

	if followUpStr := q.Get("followUpRequired"); followUpStr != "" {
		followUp, err := strconv.ParseBool(followUpStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'followUpRequired' value, expected true or false")
		}
		filter.FollowUpRequired = &followUp
	}

	if overdueStr := q.Get("overdue"); overdueStr != "" {
		overdue, err := strconv.ParseBool(overdueStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'overdue' value, expected true or false")
		}
		if overdue {
			now := time.Now().UTC()
			filter.OverdueAt = &now
		}
	}

	filter.Search = q.Get("search")

	return filter, nil
}

// GetUpcoming godoc
// @Summary Get upcoming activities
// @Description Get the caller's own open activities planned to start within the given horizon
// @Tags Activities
// @Accept json
// @Produce json
// @Param daysAhead query int false "Number of days to look ahead (1-90)" default(7)
// @Param limit query int false "Maximum number of activities to return (1-100)" default(20)
// @Success 200 {array} domain.ActivityDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/upcoming [get]
func (h *ActivityHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	daysAhead, _ := strconv.Atoi(r.URL.Query().Get("daysAhead"))
	if daysAhead < 1 {
		daysAhead = 7
	}
	if daysAhead > 90 {
		daysAhead = 90
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	activities, err := h.activityService.GetUpcoming(r.Context(), daysAhead, limit)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get upcoming activities")
		return
	}

	respondJSON(w, http.StatusOK, activities)
}

// GetByID godoc
// @Summary Get activity by ID
// @Description Get a single activity. The access is recorded in the activity's log.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get activity")
		return
	}

	// Read events never fail the request; the log service reports its own errors
	_ = h.logService.LogViewed(r.Context(), r, id)

	respondJSON(w, http.StatusOK, activity)
}

// GetTrail godoc
// @Summary Get activity log
// @Description Get the full log of one activity, oldest entry first
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {array} domain.ActivityLogEntryDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/log [get]
func (h *ActivityHandler) GetTrail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	trail, err := h.activityService.GetTrail(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get activity log")
		return
	}

	respondJSON(w, http.StatusOK, trail)
}

// Download godoc
// @Summary Download activity with log
// @Description Export one activity and its full log as a JSON document. The export is recorded in the activity's log.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityWithTrailDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/download [get]
func (h *ActivityHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	document, err := h.activityService.GetWithTrail(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to export activity")
		return
	}

	_ = h.logService.LogDownloaded(r.Context(), r, id)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "activity-"+id.String()+".json"))
	respondJSON(w, http.StatusOK, document)
}

// Create godoc
// @Summary Create activity
// @Description Create a new planned activity. Omitting ownerId assigns it to the caller; assigning to someone else requires mutate permission over that person.
// @Tags Activities
// @Accept json
// @Produce json
// @Param body body domain.CreateActivityRequest true "Activity data"
// @Success 201 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	activity, err := h.activityService.Create(r.Context(), r, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create activity")
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+activity.ID.String())
	respondJSON(w, http.StatusCreated, activity)
}

// Update godoc
// @Summary Update activity
// @Description Update descriptive fields of an activity. Status, owner, and review state are changed through their own operations.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Param body body domain.UpdateActivityRequest true "Activity data"
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var req domain.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	activity, err := h.activityService.Update(r.Context(), r, id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Delete godoc
// @Summary Delete activity
// @Description Cancel an activity as a deletion. The record is kept and the log shows a deletion entry.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	if err := h.activityService.Delete(r.Context(), r, id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete activity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Start godoc
// @Summary Start activity
// @Description Move a planned activity to in_progress and stamp the actual start
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/start [post]
func (h *ActivityHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.Start(r.Context(), r, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to start activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Complete godoc
// @Summary Complete activity
// @Description Mark an in-progress activity as completed, with an optional actual end timestamp
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Param body body domain.CompleteActivityRequest false "Optional actual end"
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/complete [post]
func (h *ActivityHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	// The body is optional; an empty body completes at the server clock
	var req domain.CompleteActivityRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	activity, err := h.activityService.Complete(r.Context(), r, id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to complete activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Cancel godoc
// @Summary Cancel activity
// @Description Move a planned or in-progress activity to cancelled
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/cancel [post]
func (h *ActivityHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.Cancel(r.Context(), r, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to cancel activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Postpone godoc
// @Summary Postpone activity
// @Description Move a planned or in-progress activity to postponed
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/postpone [post]
func (h *ActivityHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.Postpone(r.Context(), r, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to postpone activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Reopen godoc
// @Summary Reopen activity
// @Description Return a terminal activity to planned, clearing execution and review state. Prior log entries are kept.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/reopen [post]
func (h *ActivityHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.Reopen(r.Context(), r, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to reopen activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Review godoc
// @Summary Review activity
// @Description Record a review of a completed activity. A repeated review replaces the review state; both reviews stay in the log.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Param body body domain.ReviewActivityRequest true "Review notes"
// @Success 200 {object} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/{id}/review [post]
func (h *ActivityHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	var req domain.ReviewActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	activity, err := h.activityService.Review(r.Context(), r, id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to review activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Bulk godoc
// @Summary Apply one instruction to many activities
// @Description Apply a status transition or a review to up to 200 activities. Each item reports applied, skipped_out_of_scope, or failed_invalid_transition; one failure never aborts the rest.
// @Tags Activities
// @Accept json
// @Produce json
// @Param body body domain.BulkActivityRequest true "Bulk instruction"
// @Success 200 {object} domain.BulkResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /activities/bulk [post]
func (h *ActivityHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.activityService.BulkApply(r.Context(), r, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to apply bulk instruction")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
