package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// ReportHandler serves aggregated reports, derived insights, and stored
// report snapshots
type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// periodFromQuery reads the start/end query parameters. When both are absent
// the current calendar month is used; providing only one is an error.
func periodFromQuery(r *http.Request) (domain.Period, time.Time, error) {
	now := time.Now().UTC()

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" && endStr == "" {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.NewPeriod(monthStart, monthStart.AddDate(0, 1, 0)), now, nil
	}

	period, err := service.ParsePeriod(startStr, endStr)
	if err != nil {
		return domain.Period{}, now, err
	}
	return period, now, nil
}

// Summary godoc
// @Summary Get aggregated report
// @Description Build the activity and pipeline report for the caller's scope over a period. Defaults to the current calendar month.
// @Tags Reports
// @Produce json
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {object} domain.ReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period, now, err := periodFromQuery(r)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build report")
		return
	}

	report, err := h.reportService.Summary(r.Context(), period, now)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Insights godoc
// @Summary Get insights for a period
// @Description Build the report for the caller's scope and derive rule-based insights from it, ordered by severity
// @Tags Reports
// @Produce json
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {array} domain.InsightDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/insights [get]
func (h *ReportHandler) Insights(w http.ResponseWriter, r *http.Request) {
	period, now, err := periodFromQuery(r)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to derive insights")
		return
	}

	insights, err := h.reportService.Insights(r.Context(), period, now)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to derive insights")
		return
	}

	respondJSON(w, http.StatusOK, insights)
}

// CreateSnapshot godoc
// @Summary Create report snapshot
// @Description Build the report for the given period and persist it under the caller's scope key
// @Tags Reports
// @Accept json
// @Produce json
// @Param body body domain.CreateSnapshotRequest true "Snapshot period"
// @Success 201 {object} domain.ReportSnapshotDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/snapshots [post]
func (h *ReportHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	snapshot, err := h.reportService.CreateSnapshot(r.Context(), &req, time.Now().UTC())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create snapshot")
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+snapshot.ID.String())
	respondJSON(w, http.StatusCreated, snapshot)
}

// ListSnapshots godoc
// @Summary List report snapshots
// @Description Get the caller's snapshots, newest first. All-access roles see every snapshot.
// @Tags Reports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ReportSnapshotDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/snapshots [get]
func (h *ReportHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := h.reportService.ListSnapshots(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list snapshots")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetSnapshot godoc
// @Summary Get report snapshot
// @Description Get one snapshot's descriptor by ID
// @Tags Reports
// @Produce json
// @Param id path string true "Snapshot ID" format(uuid)
// @Success 200 {object} domain.ReportSnapshotDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/snapshots/{id} [get]
func (h *ReportHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid snapshot ID format")
		return
	}

	snapshot, err := h.reportService.GetSnapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get snapshot")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// DownloadSnapshot godoc
// @Summary Download report snapshot document
// @Description Stream the archived report document. Falls back to the stored metrics when no archive exists.
// @Tags Reports
// @Produce json
// @Param id path string true "Snapshot ID" format(uuid)
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reports/snapshots/{id}/download [get]
func (h *ReportHandler) DownloadSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid snapshot ID format")
		return
	}

	reader, filename, err := h.reportService.DownloadSnapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to download snapshot")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream snapshot document",
			zap.String("snapshot_id", id.String()),
			zap.Error(err))
	}
}
