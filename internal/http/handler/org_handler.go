package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/service"
	"go.uber.org/zap"
)

// OrgHandler serves the organization structure visible to the caller
type OrgHandler struct {
	orgService *service.OrgService
	logger     *zap.Logger
}

func NewOrgHandler(orgService *service.OrgService, logger *zap.Logger) *OrgHandler {
	return &OrgHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// ListTeams godoc
// @Summary List visible teams
// @Description Get the teams inside the caller's scope
// @Tags Organization
// @Produce json
// @Success 200 {array} domain.TeamDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /org/teams [get]
func (h *OrgHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.orgService.ListTeams(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list teams")
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// ListGroups godoc
// @Summary List visible groups
// @Description Get the groups inside the caller's scope
// @Tags Organization
// @Produce json
// @Success 200 {array} domain.GroupDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /org/groups [get]
func (h *OrgHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.orgService.ListGroups(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list groups")
		return
	}

	respondJSON(w, http.StatusOK, groups)
}

// GetGroup godoc
// @Summary Get group by ID
// @Description Get one group with its members. Groups outside the caller's scope are reported as not found.
// @Tags Organization
// @Produce json
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} domain.GroupDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /org/groups/{id} [get]
func (h *OrgHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	group, err := h.orgService.GetGroup(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get group")
		return
	}

	respondJSON(w, http.StatusOK, group)
}
