package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler exposes the authenticated actor's identity and resolved
// visibility
type AuthHandler struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewAuthHandler(userRepo *repository.UserRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the current authenticated user with their stored role
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// API key callers have no stored user row
			respondJSON(w, http.StatusOK, domain.UserDTO{
				ID:          userCtx.UserID,
				Email:       userCtx.Email,
				DisplayName: userCtx.DisplayName,
				Role:        userCtx.Role,
				IsActive:    true,
			})
			return
		}
		h.logger.Error("failed to load current user", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load current user")
		return
	}

	if err := h.userRepo.TouchLastLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		h.logger.Warn("failed to update last login", zap.Error(err))
	}

	respondJSON(w, http.StatusOK, mapper.ToUserDTO(user))
}

// Scope godoc
// @Summary Get current actor's resolved scope
// @Description Returns the teams, groups and salespeople visible to the caller, as resolved for this request
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.ScopeDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/scope [get]
func (h *AuthHandler) Scope(w http.ResponseWriter, r *http.Request) {
	sc, ok := scope.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	dto := domain.ScopeDTO{
		ActorID:   sc.ActorID,
		Role:      sc.Role,
		AllAccess: sc.AllAccess,
		TeamIDs:   sc.TeamIDs,
		GroupIDs:  sc.GroupIDs,
		UserIDs:   sc.UserIDs,
		CanMutate: sc.AllAccess || len(sc.MutableGroupIDs) > 0,
	}

	respondJSON(w, http.StatusOK, dto)
}
