package handler

import (
	"net/http"
	"strconv"

	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// ReminderHandler serves the pending reminders visible to the caller
type ReminderHandler struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
}

func NewReminderHandler(reminderService *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// List godoc
// @Summary List pending reminders
// @Description Get the reminders raised for activities inside the caller's scope, due soonest first
// @Tags Reminders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ReminderDTO}
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /reminders [get]
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}

	result, err := h.reminderService.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list reminders")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
