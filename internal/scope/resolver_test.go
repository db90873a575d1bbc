package scope_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// orgFixture is a small organization:
//
//	team North (owner: avp)
//	  group Alpha (supervisor: sup, teamlead: lead) - members sp1, sp2
//	  group Beta  (no supervisor, no teamlead)      - member  sp3
//	team South (owner: avp2)
//	  group Gamma (teamlead: lead2)                 - member  sp4
type orgFixture struct {
	db *gorm.DB

	avp, avp2, sup, lead, lead2     uuid.UUID
	sp1, sp2, sp3, sp4              uuid.UUID
	teamNorth, teamSouth            uuid.UUID
	groupAlpha, groupBeta, groupGamma uuid.UUID
}

func setupOrgFixture(t *testing.T) *orgFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Team{}, &domain.Group{}, &domain.Membership{},
	))

	f := &orgFixture{db: db}

	f.avp = createUser(t, db, "avp@example.com", domain.RoleAVP)
	f.avp2 = createUser(t, db, "avp2@example.com", domain.RoleAVP)
	f.sup = createUser(t, db, "sup@example.com", domain.RoleSupervisor)
	f.lead = createUser(t, db, "lead@example.com", domain.RoleTeamlead)
	f.lead2 = createUser(t, db, "lead2@example.com", domain.RoleTeamlead)
	f.sp1 = createUser(t, db, "sp1@example.com", domain.RoleSalesperson)
	f.sp2 = createUser(t, db, "sp2@example.com", domain.RoleSalesperson)
	f.sp3 = createUser(t, db, "sp3@example.com", domain.RoleSalesperson)
	f.sp4 = createUser(t, db, "sp4@example.com", domain.RoleSalesperson)

	f.teamNorth = createTeam(t, db, "North", f.avp)
	f.teamSouth = createTeam(t, db, "South", f.avp2)

	f.groupAlpha = createGroup(t, db, "Alpha", f.teamNorth, &f.sup, &f.lead)
	f.groupBeta = createGroup(t, db, "Beta", f.teamNorth, nil, nil)
	f.groupGamma = createGroup(t, db, "Gamma", f.teamSouth, nil, &f.lead2)

	createMembership(t, db, f.sp1, f.groupAlpha, 10000)
	createMembership(t, db, f.sp2, f.groupAlpha, 15000)
	createMembership(t, db, f.sp3, f.groupBeta, 12000)
	createMembership(t, db, f.sp4, f.groupGamma, 8000)

	return f
}

func createUser(t *testing.T, db *gorm.DB, email string, role domain.Role) uuid.UUID {
	user := &domain.User{
		Email:       email,
		DisplayName: email,
		Role:        role,
		IsActive:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func createTeam(t *testing.T, db *gorm.DB, name string, ownerID uuid.UUID) uuid.UUID {
	team := &domain.Team{Name: name, OwnerID: &ownerID}
	require.NoError(t, db.Create(team).Error)
	return team.ID
}

func createGroup(t *testing.T, db *gorm.DB, name string, teamID uuid.UUID, supervisorID, teamleadID *uuid.UUID) uuid.UUID {
	group := &domain.Group{
		Name:         name,
		TeamID:       teamID,
		SupervisorID: supervisorID,
		TeamleadID:   teamleadID,
	}
	require.NoError(t, db.Create(group).Error)
	return group.ID
}

func createMembership(t *testing.T, db *gorm.DB, userID, groupID uuid.UUID, quota float64) {
	m := &domain.Membership{UserID: userID, GroupID: groupID, MonthlyQuota: quota}
	require.NoError(t, db.Create(m).Error)
}

func newResolver(f *orgFixture) *scope.Resolver {
	return scope.NewResolver(repository.NewOrgRepository(f.db), zap.NewNop())
}

func TestResolve_Salesperson(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)

	s, err := resolver.Resolve(context.Background(), f.sp1, domain.RoleSalesperson)
	require.NoError(t, err)

	assert.False(t, s.AllAccess)
	assert.Empty(t, s.TeamIDs)
	assert.Empty(t, s.GroupIDs)
	assert.Equal(t, []uuid.UUID{f.sp1}, s.UserIDs, "salesperson sees only themselves")
	assert.True(t, s.IsEmpty())

	assert.True(t, s.CanMutateUser(f.sp1))
	assert.False(t, s.CanMutateUser(f.sp2), "salesperson cannot mutate a colleague's activities")
}

func TestResolve_Teamlead(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)

	s, err := resolver.Resolve(context.Background(), f.lead, domain.RoleTeamlead)
	require.NoError(t, err)

	assert.False(t, s.AllAccess)
	assert.ElementsMatch(t, []uuid.UUID{f.groupAlpha}, s.GroupIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.teamNorth}, s.TeamIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.sp1, f.sp2, f.lead}, s.UserIDs)
	assert.True(t, s.CanMutateGroup(f.groupAlpha))
	assert.False(t, s.CanMutateGroup(f.groupBeta))
	assert.False(t, s.IsEmpty())
}

func TestResolve_SupervisorMatchesTeamlead(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)
	ctx := context.Background()

	supScope, err := resolver.Resolve(ctx, f.sup, domain.RoleSupervisor)
	require.NoError(t, err)
	leadScope, err := resolver.Resolve(ctx, f.lead, domain.RoleTeamlead)
	require.NoError(t, err)

	// Both edges point at group Alpha, so the resolved units must agree.
	assert.ElementsMatch(t, leadScope.TeamIDs, supScope.TeamIDs)
	assert.ElementsMatch(t, leadScope.GroupIDs, supScope.GroupIDs)
	assert.ElementsMatch(t, leadScope.MutableGroupIDs, supScope.MutableGroupIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.sp1, f.sp2, f.sup}, supScope.UserIDs)
}

func TestResolve_AVP(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)

	s, err := resolver.Resolve(context.Background(), f.avp, domain.RoleAVP)
	require.NoError(t, err)

	assert.False(t, s.AllAccess)
	assert.ElementsMatch(t, []uuid.UUID{f.teamNorth}, s.TeamIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.groupAlpha, f.groupBeta}, s.GroupIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.sp1, f.sp2, f.sp3, f.avp}, s.UserIDs)
	assert.False(t, s.ContainsUser(f.sp4), "other team's members stay invisible")
	assert.False(t, s.ContainsGroup(f.groupGamma))
}

func TestResolve_TopTier(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)
	ctx := context.Background()

	for _, role := range []domain.Role{domain.RoleVP, domain.RoleGM, domain.RolePresident, domain.RoleAdmin} {
		s, err := resolver.Resolve(ctx, uuid.New(), role)
		require.NoError(t, err, "role %s", role)

		assert.True(t, s.AllAccess, "role %s", role)
		assert.True(t, s.ContainsUser(f.sp4))
		assert.True(t, s.ContainsGroup(f.groupGamma))
		assert.True(t, s.CanMutateUser(f.sp1))
		assert.Equal(t, "org", s.Key(), "top tier scopes share the organization key")
	}
}

func TestResolve_UnknownRole(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)

	_, err := resolver.Resolve(context.Background(), uuid.New(), domain.Role("intern"))
	assert.Error(t, err)
}

func TestResolve_NoEdges(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)

	// A teamlead who leads no groups sees only themselves, without error.
	orphan := createUser(t, f.db, "orphan@example.com", domain.RoleTeamlead)
	s, err := resolver.Resolve(context.Background(), orphan, domain.RoleTeamlead)
	require.NoError(t, err)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, []uuid.UUID{orphan}, s.UserIDs)
}

func TestResolve_Monotonicity(t *testing.T) {
	f := setupOrgFixture(t)
	resolver := newResolver(f)
	ctx := context.Background()

	leadScope, err := resolver.Resolve(ctx, f.lead, domain.RoleTeamlead)
	require.NoError(t, err)
	avpScope, err := resolver.Resolve(ctx, f.avp, domain.RoleAVP)
	require.NoError(t, err)
	vpScope, err := resolver.Resolve(ctx, uuid.New(), domain.RoleVP)
	require.NoError(t, err)

	// Every salesperson a teamlead sees, the team owner sees too, and the
	// top tier sees everyone.
	for _, id := range leadScope.UserIDs {
		if id == f.lead {
			continue
		}
		assert.True(t, avpScope.ContainsUser(id), "avp should see %s", id)
		assert.True(t, vpScope.ContainsUser(id))
	}
	for _, id := range avpScope.GroupIDs {
		assert.True(t, vpScope.ContainsGroup(id))
	}
}

func TestScopeSet_Key(t *testing.T) {
	actorID := uuid.New()
	s := &scope.ScopeSet{ActorID: actorID, Role: domain.RoleTeamlead}
	assert.Equal(t, "teamlead:"+actorID.String(), s.Key())
}

func TestScopeContext_RoundTrip(t *testing.T) {
	s := &scope.ScopeSet{ActorID: uuid.New(), Role: domain.RoleSalesperson}
	ctx := scope.WithContext(context.Background(), s)

	got, ok := scope.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = scope.FromContext(context.Background())
	assert.False(t, ok)
}
