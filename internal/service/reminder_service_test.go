package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReminderService(f *serviceFixture) *service.ReminderService {
	return service.NewReminderService(
		repository.NewReminderRepository(f.db),
		repository.NewActivityRepository(f.db),
		48*time.Hour, // upcoming lead
		48*time.Hour, // review age
		zap.NewNop(),
	)
}

func (f *serviceFixture) remindersByKind(t *testing.T, kind domain.ReminderKind) []domain.Reminder {
	t.Helper()
	var rows []domain.Reminder
	require.NoError(t, f.db.Where("kind = ?", kind).Order("due_at ASC").Find(&rows).Error)
	return rows
}

func TestReminderScan(t *testing.T) {
	f := setupFixture(t)
	svc := newReminderService(f)
	now := augustNow // 2026-08-25 12:00 UTC

	// Starts within the 48h lead window
	upcoming := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned,
		planWindow(augustDay(26, 10), augustDay(26, 11)))

	// Also starts soon, but already running; only planned work gets a nudge
	f.seedActivity(t, f.sp1, domain.ActivityStatusInProgress,
		planWindow(augustDay(26, 14), augustDay(27, 15)))

	// Past its planned end and still open
	overduePlanned := f.seedActivity(t, f.sp2, domain.ActivityStatusPlanned,
		planWindow(augustDay(19, 9), augustDay(20, 10)))

	// Postponed work stays overdue
	overduePostponed := f.seedActivity(t, f.sp1, domain.ActivityStatusPostponed,
		planWindow(augustDay(21, 9), augustDay(22, 10)))

	// Completed and flagged for follow-up; finished recently enough that no
	// review reminder fires alongside
	followUp := f.seedActivity(t, f.sp2, domain.ActivityStatusCompleted, func(a *domain.SalesActivity) {
		planWindow(augustDay(24, 9), augustDay(24, 10))(a)
		end := augustDay(24, 18)
		a.ActualEnd = &end
		a.FollowUpRequired = true
	})

	// Completed two days ago and never reviewed
	unreviewed := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, func(a *domain.SalesActivity) {
		planWindow(augustDay(23, 8), augustDay(23, 9))(a)
		end := augustDay(23, 9)
		a.ActualEnd = &end
	})

	raised, err := svc.Scan(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 5, raised)

	ups := f.remindersByKind(t, domain.ReminderKindUpcoming)
	require.Len(t, ups, 1)
	assert.Equal(t, upcoming.ID, ups[0].ActivityID)
	assert.Equal(t, f.sp1.ID, ups[0].OwnerID)
	assert.WithinDuration(t, augustDay(26, 10), ups[0].DueAt, time.Second)

	over := f.remindersByKind(t, domain.ReminderKindOverdue)
	require.Len(t, over, 2)
	assert.Equal(t, overduePlanned.ID, over[0].ActivityID)
	assert.Equal(t, overduePostponed.ID, over[1].ActivityID)

	fup := f.remindersByKind(t, domain.ReminderKindFollowUp)
	require.Len(t, fup, 1)
	assert.Equal(t, followUp.ID, fup[0].ActivityID)
	assert.Equal(t, augustDay(24, 18), fup[0].DueAt.UTC())

	rev := f.remindersByKind(t, domain.ReminderKindReviewNeeded)
	require.Len(t, rev, 1)
	assert.Equal(t, unreviewed.ID, rev[0].ActivityID)
	assert.Equal(t, augustDay(25, 9), rev[0].DueAt.UTC(), "due when the review grace ran out")
}

func TestReminderScan_Idempotent(t *testing.T) {
	f := setupFixture(t)
	svc := newReminderService(f)

	f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned,
		planWindow(augustDay(19, 9), augustDay(20, 10)))

	raised, err := svc.Scan(context.Background(), augustNow)
	require.NoError(t, err)
	assert.Equal(t, 1, raised)

	raised, err = svc.Scan(context.Background(), augustNow)
	require.NoError(t, err)
	assert.Equal(t, 1, raised)

	var count int64
	require.NoError(t, f.db.Model(&domain.Reminder{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-scanning refreshes the row instead of duplicating it")
}

func TestReminderScan_SweepsExpiredRows(t *testing.T) {
	f := setupFixture(t)
	svc := newReminderService(f)

	stale := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned,
		planWindow(julyDay(1), julyDay(2)))
	require.NoError(t, f.db.Create(&domain.Reminder{
		ActivityID: stale.ID,
		Kind:       domain.ReminderKindUpcoming,
		OwnerID:    f.sp1.ID,
		DueAt:      julyDay(2),
	}).Error)

	// The stale activity is still overdue, so its overdue reminder is raised
	// fresh while the month-old upcoming row is swept
	_, err := svc.Scan(context.Background(), augustNow)
	require.NoError(t, err)

	assert.Empty(t, f.remindersByKind(t, domain.ReminderKindUpcoming))
	assert.Len(t, f.remindersByKind(t, domain.ReminderKindOverdue), 1)
}

func TestReminderList_ScopeBound(t *testing.T) {
	f := setupFixture(t)
	svc := newReminderService(f)

	seed := func(owner *domain.User, due time.Time) {
		a := f.seedActivity(t, owner, domain.ActivityStatusPlanned, planWindow(due, due.Add(time.Hour)))
		require.NoError(t, f.db.Create(&domain.Reminder{
			ActivityID: a.ID,
			Kind:       domain.ReminderKindUpcoming,
			OwnerID:    owner.ID,
			GroupID:    a.GroupID,
			Message:    "starts soon",
			DueAt:      due,
		}).Error)
	}

	seed(f.sp3, augustDay(19, 9))
	seed(f.sp1, augustDay(20, 9))
	seed(f.sp2, augustDay(21, 9))

	t.Run("teamlead sees only the group's reminders", func(t *testing.T) {
		resp, err := svc.List(f.ctxFor(t, f.lead), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)

		dtos := resp.Data.([]domain.ReminderDTO)
		require.Len(t, dtos, 2)
		assert.Equal(t, f.sp1.ID, dtos[0].OwnerID, "soonest due first")
		assert.Equal(t, f.sp2.ID, dtos[1].OwnerID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		resp, err := svc.List(f.ctxFor(t, f.admin), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, 2, resp.TotalPages)

		dtos := resp.Data.([]domain.ReminderDTO)
		require.Len(t, dtos, 2)
		assert.Equal(t, f.sp3.ID, dtos[0].OwnerID)
	})

	t.Run("salesperson sees only their own", func(t *testing.T) {
		resp, err := svc.List(f.ctxFor(t, f.sp2), 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
	})
}
