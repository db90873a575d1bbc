package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrgService exposes the organizational units visible to the calling actor.
// Boundary layers read these views instead of re-deriving scope.
type OrgService struct {
	orgRepo *repository.OrgRepository
	logger  *zap.Logger
}

// NewOrgService creates a new OrgService instance
func NewOrgService(orgRepo *repository.OrgRepository, logger *zap.Logger) *OrgService {
	return &OrgService{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

// ListTeams returns the teams the caller may observe
func (s *OrgService) ListTeams(ctx context.Context) ([]domain.TeamDTO, error) {
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return nil, ErrPermissionDenied
	}

	teams, err := s.orgRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	dtos := make([]domain.TeamDTO, 0, len(teams))
	for i := range teams {
		if !sc.ContainsTeam(teams[i].ID) {
			continue
		}
		dtos = append(dtos, mapper.ToTeamDTO(&teams[i]))
	}
	return dtos, nil
}

// ListGroups returns the groups the caller may observe. The repository keys
// the restriction on the group ids in the resolved scope.
func (s *OrgService) ListGroups(ctx context.Context) ([]domain.GroupDTO, error) {
	if _, ok := scope.FromContext(ctx); !ok {
		return nil, ErrPermissionDenied
	}

	groups, err := s.orgRepo.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	dtos := make([]domain.GroupDTO, len(groups))
	for i := range groups {
		dtos[i] = mapper.ToGroupDTO(&groups[i])
	}
	return dtos, nil
}

// GetGroup returns one visible group with its members. Out-of-scope groups
// surface as not found.
func (s *OrgService) GetGroup(ctx context.Context, id uuid.UUID) (*domain.GroupDTO, error) {
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return nil, ErrPermissionDenied
	}
	if !sc.ContainsGroup(id) {
		return nil, ErrNotFound
	}

	group, err := s.orgRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	dto := mapper.ToGroupDTO(group)
	return &dto, nil
}
