package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// OrgRepository reads the organizational graph: teams, groups and
// memberships. The scope resolver walks the graph through this repository.
type OrgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// TeamsOwnedBy returns the teams whose owner edge points at the user
func (r *OrgRepository) TeamsOwnedBy(ctx context.Context, userID uuid.UUID) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).Where("owner_id = ?", userID).Find(&teams).Error
	return teams, err
}

// GroupsSupervisedBy returns the groups whose supervisor edge points at the user
func (r *OrgRepository) GroupsSupervisedBy(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	var groups []domain.Group
	err := r.db.WithContext(ctx).Where("supervisor_id = ?", userID).Find(&groups).Error
	return groups, err
}

// GroupsLedBy returns the groups whose teamlead edge points at the user
func (r *OrgRepository) GroupsLedBy(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	var groups []domain.Group
	err := r.db.WithContext(ctx).Where("teamlead_id = ?", userID).Find(&groups).Error
	return groups, err
}

func (r *OrgRepository) GroupsInTeams(ctx context.Context, teamIDs []uuid.UUID) ([]domain.Group, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var groups []domain.Group
	err := r.db.WithContext(ctx).Where("team_id IN ?", teamIDs).Find(&groups).Error
	return groups, err
}

func (r *OrgRepository) MembersOfGroups(ctx context.Context, groupIDs []uuid.UUID) ([]domain.Membership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var memberships []domain.Membership
	err := r.db.WithContext(ctx).Where("group_id IN ?", groupIDs).Find(&memberships).Error
	return memberships, err
}

func (r *OrgRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Groups").
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *OrgRepository) GetTeamByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Groups").
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListGroups returns the groups inside the caller's resolved scope, in name
// order. Top-tier scopes see every group; a scope without groups sees none.
func (r *OrgRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	query := r.db.WithContext(ctx).
		Preload("Supervisor").
		Preload("Teamlead")
	query = ApplyGroupScopeFilter(ctx, query, "id")
	err := query.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *OrgRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Preload("Teamlead").
		Preload("Memberships").
		Preload("Memberships.User").
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// MembershipOf returns the user's group membership, or gorm.ErrRecordNotFound
// when the user is not placed in any group
func (r *OrgRepository) MembershipOf(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	var membership domain.Membership
	err := r.db.WithContext(ctx).
		Preload("Group").
		First(&membership, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// QuotaSumByUsers sums the monthly quotas of the given users. Users without
// a membership contribute nothing.
func (r *OrgRepository) QuotaSumByUsers(ctx context.Context, userIDs []uuid.UUID) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var sum *float64
	err := r.db.WithContext(ctx).Model(&domain.Membership{}).
		Select("SUM(monthly_quota)").
		Where("user_id IN ?", userIDs).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// QuotaSumAll sums the monthly quotas across the whole organization
func (r *OrgRepository) QuotaSumAll(ctx context.Context) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&domain.Membership{}).
		Select("SUM(monthly_quota)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
