package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// serviceFixture is the small organization the service tests run against:
//
//	team North (owner: avp)
//	  group Alpha (supervisor: sup, teamlead: lead) - members sp1, sp2
//	  group Beta  (no supervisor, no teamlead)      - member  sp3
type serviceFixture struct {
	db *gorm.DB

	admin, avp, sup, lead, sp1, sp2, sp3 *domain.User

	teamNorth  *domain.Team
	groupAlpha *domain.Group
	groupBeta  *domain.Group
}

func setupFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Team{}, &domain.Group{}, &domain.Membership{},
		&domain.SalesActivity{}, &domain.ActivityLogEntry{},
		&domain.PipelineRecord{}, &domain.Reminder{}, &domain.ReportSnapshot{},
	))

	f := &serviceFixture{db: db}
	f.admin = f.newUser(t, "Alex Admin", "admin@example.com", domain.RoleAdmin)
	f.avp = f.newUser(t, "Vera Vest", "avp@example.com", domain.RoleAVP)
	f.sup = f.newUser(t, "Sam Stern", "sup@example.com", domain.RoleSupervisor)
	f.lead = f.newUser(t, "Lena Lund", "lead@example.com", domain.RoleTeamlead)
	f.sp1 = f.newUser(t, "Per Berg", "sp1@example.com", domain.RoleSalesperson)
	f.sp2 = f.newUser(t, "Mia Moen", "sp2@example.com", domain.RoleSalesperson)
	f.sp3 = f.newUser(t, "Ola Aas", "sp3@example.com", domain.RoleSalesperson)

	f.teamNorth = &domain.Team{Name: "North", OwnerID: &f.avp.ID}
	require.NoError(t, db.Create(f.teamNorth).Error)

	f.groupAlpha = &domain.Group{
		Name:         "Alpha",
		TeamID:       f.teamNorth.ID,
		SupervisorID: &f.sup.ID,
		TeamleadID:   &f.lead.ID,
	}
	require.NoError(t, db.Create(f.groupAlpha).Error)

	f.groupBeta = &domain.Group{Name: "Beta", TeamID: f.teamNorth.ID}
	require.NoError(t, db.Create(f.groupBeta).Error)

	f.addMember(t, f.sp1, f.groupAlpha, 10000)
	f.addMember(t, f.sp2, f.groupAlpha, 15000)
	f.addMember(t, f.sp3, f.groupBeta, 12000)

	return f
}

func (f *serviceFixture) newUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, DisplayName: name, Role: role, IsActive: true}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *serviceFixture) addMember(t *testing.T, u *domain.User, g *domain.Group, quota float64) {
	t.Helper()
	m := &domain.Membership{UserID: u.ID, GroupID: g.ID, MonthlyQuota: quota}
	require.NoError(t, f.db.Create(m).Error)
}

// ctxFor builds the request context the middleware chain would produce for
// the given actor: the authenticated identity plus the resolved scope.
func (f *serviceFixture) ctxFor(t *testing.T, u *domain.User) context.Context {
	t.Helper()
	resolver := scope.NewResolver(repository.NewOrgRepository(f.db), zap.NewNop())
	sc, err := resolver.Resolve(context.Background(), u.ID, u.Role)
	require.NoError(t, err)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
	})
	return scope.WithContext(ctx, sc)
}

func (f *serviceFixture) activityService() *service.ActivityService {
	return service.NewActivityService(
		repository.NewActivityRepository(f.db),
		repository.NewOrgRepository(f.db),
		repository.NewUserRepository(f.db),
		repository.NewReminderRepository(f.db),
		f.logService(),
		zap.NewNop(),
		f.db,
	)
}

func (f *serviceFixture) logService() *service.ActivityLogService {
	return service.NewActivityLogService(repository.NewActivityLogRepository(f.db), zap.NewNop())
}

// seedActivity inserts an activity directly, bypassing the service, for tests
// that need a specific starting state. Actual timestamps are filled to match
// the requested status.
func (f *serviceFixture) seedActivity(t *testing.T, owner *domain.User, status domain.ActivityStatus, mutate ...func(*domain.SalesActivity)) *domain.SalesActivity {
	t.Helper()
	now := time.Now().UTC()
	a := &domain.SalesActivity{
		Title:        "Seeded " + string(status),
		Kind:         domain.ActivityKindCall,
		Status:       status,
		Priority:     domain.PriorityMedium,
		OwnerID:      owner.ID,
		OwnerName:    owner.DisplayName,
		PlannedStart: now.Add(time.Hour),
		PlannedEnd:   now.Add(2 * time.Hour),
	}

	switch status {
	case domain.ActivityStatusInProgress:
		start := now.Add(-time.Hour)
		a.ActualStart = &start
	case domain.ActivityStatusCompleted:
		start := now.Add(-2 * time.Hour)
		end := now.Add(-time.Hour)
		a.ActualStart = &start
		a.ActualEnd = &end
	}

	var membership domain.Membership
	if err := f.db.Where("user_id = ?", owner.ID).First(&membership).Error; err == nil {
		a.GroupID = &membership.GroupID
	}

	for _, m := range mutate {
		m(a)
	}
	require.NoError(t, f.db.Create(a).Error)
	return a
}

func (f *serviceFixture) aggregationService(defaultTarget float64) *service.AggregationService {
	return service.NewAggregationService(
		repository.NewActivityRepository(f.db),
		repository.NewPipelineRepository(f.db),
		repository.NewOrgRepository(f.db),
		repository.NewUserRepository(f.db),
		defaultTarget,
		zap.NewNop(),
	)
}

// seedDeal inserts a mirrored pipeline record owned by the given salesperson
func (f *serviceFixture) seedDeal(t *testing.T, owner *domain.User, stage domain.FunnelStage, outcome domain.DealOutcome, value float64, enteredAt time.Time, closedAt *time.Time) *domain.PipelineRecord {
	t.Helper()
	rec := &domain.PipelineRecord{
		DealID:         "WH-" + uuid.NewString(),
		Title:          "Deal for " + owner.DisplayName,
		Stage:          stage,
		Outcome:        outcome,
		Value:          value,
		OwnerID:        owner.ID,
		StageEnteredAt: enteredAt,
		ClosedAt:       closedAt,
	}

	var membership domain.Membership
	if err := f.db.Where("user_id = ?", owner.ID).First(&membership).Error; err == nil {
		rec.GroupID = &membership.GroupID
	}

	require.NoError(t, f.db.Create(rec).Error)
	return rec
}

// trailActions returns the actions logged for the activity, oldest first
func (f *serviceFixture) trailActions(t *testing.T, activityID uuid.UUID) []domain.LogAction {
	t.Helper()
	var entries []domain.ActivityLogEntry
	require.NoError(t, f.db.
		Where("activity_id = ?", activityID).
		Order("performed_at ASC").
		Find(&entries).Error)

	actions := make([]domain.LogAction, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	return actions
}

func (f *serviceFixture) reloadActivity(t *testing.T, id uuid.UUID) *domain.SalesActivity {
	t.Helper()
	var a domain.SalesActivity
	require.NoError(t, f.db.First(&a, "id = ?", id).Error)
	return &a
}

func testRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("X-Request-ID", "test-request")
	return r
}
