package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLifecycle_EndToEnd(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	spCtx := f.ctxFor(t, f.sp1)

	created, err := svc.Create(spCtx, testRequest("POST", "/activities"), &domain.CreateActivityRequest{
		Title:        "Discovery call with Borg Industries",
		Kind:         domain.ActivityKindCall,
		Priority:     domain.PriorityHigh,
		CustomerRef:  "Borg Industries",
		PlannedStart: time.Now().UTC().Add(time.Hour),
		PlannedEnd:   time.Now().UTC().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityStatusPlanned, created.Status)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
	assert.Equal(t, f.sp1.ID, created.OwnerID)
	assert.Equal(t, f.sp1.DisplayName, created.OwnerName)
	require.NotNil(t, created.GroupID, "owner's group is denormalized onto the activity")
	assert.Equal(t, f.groupAlpha.ID, *created.GroupID)

	started, err := svc.Start(spCtx, testRequest("POST", "/activities/start"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityStatusInProgress, started.Status)
	assert.NotNil(t, started.ActualStart)

	completed, err := svc.Complete(spCtx, testRequest("POST", "/activities/complete"), created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityStatusCompleted, completed.Status)
	assert.NotNil(t, completed.ActualEnd)

	// The supervisor of group Alpha reviews the outcome
	reviewed, err := svc.Review(f.ctxFor(t, f.sup), testRequest("POST", "/activities/review"), created.ID, &domain.ReviewActivityRequest{
		Notes: "good outcome",
	})
	require.NoError(t, err)
	assert.True(t, reviewed.Reviewed)
	assert.Equal(t, f.sup.DisplayName, reviewed.ReviewedByName)
	assert.Equal(t, "good outcome", reviewed.ReviewNotes)
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, f.sup.ID, *reviewed.ReviewedByID)

	assert.Equal(t, []domain.LogAction{
		domain.LogActionCreated,
		domain.LogActionStatusChanged,
		domain.LogActionStatusChanged,
		domain.LogActionReviewed,
	}, f.trailActions(t, created.ID))

	// Reads and denied attempts are logged but stay out of the mutation trail
	logSvc := f.logService()
	require.NoError(t, logSvc.LogViewed(spCtx, testRequest("GET", "/activities"), created.ID))
	require.NoError(t, logSvc.LogDownloaded(spCtx, testRequest("GET", "/activities"), created.ID))
	require.NoError(t, logSvc.LogAccessDenied(f.ctxFor(t, f.sp2), testRequest("GET", "/activities"), created.ID))

	trail, err := svc.GetTrail(spCtx, created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 4)
	assert.Equal(t, f.sp1.ID, trail[0].ActorID)
	assert.Equal(t, f.sup.ID, trail[3].ActorID)

	doc, err := svc.GetWithTrail(spCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, doc.Activity.ID)
	assert.Len(t, doc.Trail, 4)
}

func TestActivityCreate_OwnerScope(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()

	req := func(owner *uuid.UUID) *domain.CreateActivityRequest {
		return &domain.CreateActivityRequest{
			Title:        "Follow-up",
			Kind:         domain.ActivityKindFollowUp,
			OwnerID:      owner,
			PlannedStart: time.Now().UTC().Add(time.Hour),
			PlannedEnd:   time.Now().UTC().Add(2 * time.Hour),
		}
	}

	t.Run("salesperson cannot create for a colleague", func(t *testing.T) {
		_, err := svc.Create(f.ctxFor(t, f.sp1), testRequest("POST", "/activities"), req(&f.sp2.ID))
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("teamlead creates on behalf of a group member", func(t *testing.T) {
		dto, err := svc.Create(f.ctxFor(t, f.lead), testRequest("POST", "/activities"), req(&f.sp1.ID))
		require.NoError(t, err)
		assert.Equal(t, f.sp1.ID, dto.OwnerID)
		assert.Equal(t, f.sp1.DisplayName, dto.OwnerName)
	})

	t.Run("teamlead cannot create outside the group", func(t *testing.T) {
		_, err := svc.Create(f.ctxFor(t, f.lead), testRequest("POST", "/activities"), req(&f.sp3.ID))
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestActivityCreate_Validation(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	adminCtx := f.ctxFor(t, f.admin)

	base := func() *domain.CreateActivityRequest {
		return &domain.CreateActivityRequest{
			Title:        "Quote review",
			Kind:         domain.ActivityKindProposal,
			PlannedStart: time.Now().UTC().Add(time.Hour),
			PlannedEnd:   time.Now().UTC().Add(2 * time.Hour),
		}
	}

	t.Run("planned end precedes planned start", func(t *testing.T) {
		req := base()
		req.PlannedEnd = req.PlannedStart.Add(-time.Minute)
		_, err := svc.Create(adminCtx, testRequest("POST", "/activities"), req)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown owner", func(t *testing.T) {
		req := base()
		ghost := uuid.New()
		req.OwnerID = &ghost
		_, err := svc.Create(adminCtx, testRequest("POST", "/activities"), req)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("disabled owner", func(t *testing.T) {
		disabled := f.newUser(t, "Gone Person", "gone@example.com", domain.RoleSalesperson)
		require.NoError(t, f.db.Model(disabled).Update("is_active", false).Error)

		req := base()
		req.OwnerID = &disabled.ID
		_, err := svc.Create(adminCtx, testRequest("POST", "/activities"), req)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("priority defaults to medium", func(t *testing.T) {
		dto, err := svc.Create(f.ctxFor(t, f.sp1), testRequest("POST", "/activities"), base())
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, dto.Priority)
	})
}

func TestActivityTransitions(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	ctx := f.ctxFor(t, f.sp1)
	r := testRequest("POST", "/activities/transition")

	tests := []struct {
		name    string
		from    domain.ActivityStatus
		apply   func(id uuid.UUID) error
		wantErr error
	}{
		{
			name: "planned to in_progress",
			from: domain.ActivityStatusPlanned,
			apply: func(id uuid.UUID) error {
				_, err := svc.Start(ctx, r, id)
				return err
			},
		},
		{
			name: "planned to completed skips in_progress",
			from: domain.ActivityStatusPlanned,
			apply: func(id uuid.UUID) error {
				_, err := svc.Complete(ctx, r, id, nil)
				return err
			},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name: "planned to postponed",
			from: domain.ActivityStatusPlanned,
			apply: func(id uuid.UUID) error {
				_, err := svc.Postpone(ctx, r, id)
				return err
			},
		},
		{
			name: "in_progress to completed",
			from: domain.ActivityStatusInProgress,
			apply: func(id uuid.UUID) error {
				_, err := svc.Complete(ctx, r, id, nil)
				return err
			},
		},
		{
			name: "in_progress to cancelled",
			from: domain.ActivityStatusInProgress,
			apply: func(id uuid.UUID) error {
				_, err := svc.Cancel(ctx, r, id)
				return err
			},
		},
		{
			name: "completed cannot restart",
			from: domain.ActivityStatusCompleted,
			apply: func(id uuid.UUID) error {
				_, err := svc.Start(ctx, r, id)
				return err
			},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name: "cancelled cannot complete",
			from: domain.ActivityStatusCancelled,
			apply: func(id uuid.UUID) error {
				_, err := svc.Complete(ctx, r, id, nil)
				return err
			},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name: "postponed cannot postpone again",
			from: domain.ActivityStatusPostponed,
			apply: func(id uuid.UUID) error {
				_, err := svc.Postpone(ctx, r, id)
				return err
			},
			wantErr: service.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seeded := f.seedActivity(t, f.sp1, tt.from)
			err := tt.apply(seeded.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				reloaded := f.reloadActivity(t, seeded.ID)
				assert.Equal(t, tt.from, reloaded.Status, "failed transition must not mutate")
				assert.Empty(t, f.trailActions(t, seeded.ID), "failed transition must not log")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, []domain.LogAction{domain.LogActionStatusChanged}, f.trailActions(t, seeded.ID))
			}
		})
	}
}

func TestActivityComplete_EndBeforeStart(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	ctx := f.ctxFor(t, f.sp1)

	created, err := svc.Create(ctx, testRequest("POST", "/activities"), &domain.CreateActivityRequest{
		Title:        "Demo at customer site",
		Kind:         domain.ActivityKindDemo,
		PlannedStart: time.Now().UTC().Add(time.Hour),
		PlannedEnd:   time.Now().UTC().Add(3 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Start(ctx, testRequest("POST", "/activities/start"), created.ID)
	require.NoError(t, err)

	badEnd := time.Now().UTC().Add(-2 * time.Hour)
	_, err = svc.Complete(ctx, testRequest("POST", "/activities/complete"), created.ID, &domain.CompleteActivityRequest{
		ActualEnd: &badEnd,
	})
	assert.ErrorIs(t, err, service.ErrInconsistentState)

	reloaded := f.reloadActivity(t, created.ID)
	assert.Equal(t, domain.ActivityStatusInProgress, reloaded.Status)
	assert.Nil(t, reloaded.ActualEnd)
	assert.Len(t, f.trailActions(t, created.ID), 2, "the rejected completion leaves no trail entry")

	// An explicit end after the actual start is accepted
	goodEnd := time.Now().UTC().Add(time.Hour)
	dto, err := svc.Complete(ctx, testRequest("POST", "/activities/complete"), created.ID, &domain.CompleteActivityRequest{
		ActualEnd: &goodEnd,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ActualEnd)
	assert.Equal(t, goodEnd.Format(time.RFC3339), *dto.ActualEnd)
}

func TestActivityReopen(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	spCtx := f.ctxFor(t, f.sp1)

	t.Run("reopen clears actuals and review state", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted)

		_, err := svc.Review(f.ctxFor(t, f.lead), testRequest("POST", "/activities/review"), seeded.ID, &domain.ReviewActivityRequest{
			Notes: "checked before reopen",
		})
		require.NoError(t, err)

		dto, err := svc.Reopen(spCtx, testRequest("POST", "/activities/reopen"), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ActivityStatusPlanned, dto.Status)
		assert.Nil(t, dto.ActualStart)
		assert.Nil(t, dto.ActualEnd)
		assert.False(t, dto.Reviewed)
		assert.Nil(t, dto.ReviewedByID)
		assert.Empty(t, dto.ReviewNotes)

		// The trail keeps the review that the reopen undid
		assert.Equal(t, []domain.LogAction{
			domain.LogActionReviewed,
			domain.LogActionStatusChanged,
		}, f.trailActions(t, seeded.ID))
	})

	t.Run("only terminal activities reopen", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusInProgress)
		_, err := svc.Reopen(spCtx, testRequest("POST", "/activities/reopen"), seeded.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("reopened activity can run the lifecycle again", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusPostponed)

		_, err := svc.Reopen(spCtx, testRequest("POST", "/activities/reopen"), seeded.ID)
		require.NoError(t, err)
		_, err = svc.Start(spCtx, testRequest("POST", "/activities/start"), seeded.ID)
		require.NoError(t, err)
	})
}

func TestActivityReview(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()

	t.Run("salespeople cannot review", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted)
		_, err := svc.Review(f.ctxFor(t, f.sp1), testRequest("POST", "/activities/review"), seeded.ID, &domain.ReviewActivityRequest{
			Notes: "my own work looks great",
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("reviewer must have the owner in scope", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp3, domain.ActivityStatusCompleted)
		_, err := svc.Review(f.ctxFor(t, f.lead), testRequest("POST", "/activities/review"), seeded.ID, &domain.ReviewActivityRequest{
			Notes: "not my group",
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("second review overwrites notes but both are logged", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted)

		_, err := svc.Review(f.ctxFor(t, f.lead), testRequest("POST", "/activities/review"), seeded.ID, &domain.ReviewActivityRequest{
			Notes: "solid first pass",
		})
		require.NoError(t, err)

		dto, err := svc.Review(f.ctxFor(t, f.sup), testRequest("POST", "/activities/review"), seeded.ID, &domain.ReviewActivityRequest{
			Notes: "agreed, closing out",
		})
		require.NoError(t, err)

		assert.True(t, dto.Reviewed)
		assert.Equal(t, f.sup.DisplayName, dto.ReviewedByName)
		assert.Equal(t, "agreed, closing out", dto.ReviewNotes)

		assert.Equal(t, []domain.LogAction{
			domain.LogActionReviewed,
			domain.LogActionReviewed,
		}, f.trailActions(t, seeded.ID))
	})
}

func TestActivityUpdate(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()

	updateReq := &domain.UpdateActivityRequest{
		Title:        "Renamed meeting",
		Kind:         domain.ActivityKindMeeting,
		Priority:     domain.PriorityUrgent,
		PlannedStart: time.Now().UTC().Add(4 * time.Hour),
		PlannedEnd:   time.Now().UTC().Add(5 * time.Hour),
	}

	t.Run("teamlead edits a group member's activity", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)

		dto, err := svc.Update(f.ctxFor(t, f.lead), testRequest("PUT", "/activities"), seeded.ID, updateReq)
		require.NoError(t, err)
		assert.Equal(t, "Renamed meeting", dto.Title)
		assert.Equal(t, domain.PriorityUrgent, dto.Priority)
		assert.Equal(t, f.sp1.ID, dto.OwnerID, "owner never changes on update")
		assert.Equal(t, domain.ActivityStatusPlanned, dto.Status, "update leaves the status alone")

		actions := f.trailActions(t, seeded.ID)
		require.Equal(t, []domain.LogAction{domain.LogActionUpdated}, actions)

		var entry domain.ActivityLogEntry
		require.NoError(t, f.db.First(&entry, "activity_id = ?", seeded.ID).Error)
		assert.Contains(t, entry.Changes, `"title"`)
		assert.NotContains(t, entry.Changes, `"status"`)
	})

	t.Run("colleague cannot edit", func(t *testing.T) {
		// A colleague's activity is outside sp2's scope, so the read itself
		// already reports it as missing
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)
		_, err := svc.Update(f.ctxFor(t, f.sp2), testRequest("PUT", "/activities"), seeded.ID, updateReq)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("planned end precedes planned start", func(t *testing.T) {
		seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)
		bad := *updateReq
		bad.PlannedEnd = bad.PlannedStart.Add(-time.Minute)
		_, err := svc.Update(f.ctxFor(t, f.sp1), testRequest("PUT", "/activities"), seeded.ID, &bad)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestActivityDelete(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	ctx := f.ctxFor(t, f.sp1)

	seeded := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)
	require.NoError(t, f.db.Create(&domain.Reminder{
		ActivityID: seeded.ID,
		Kind:       domain.ReminderKindUpcoming,
		OwnerID:    f.sp1.ID,
		DueAt:      seeded.PlannedStart,
	}).Error)

	require.NoError(t, svc.Delete(ctx, testRequest("DELETE", "/activities"), seeded.ID))

	reloaded := f.reloadActivity(t, seeded.ID)
	assert.Equal(t, domain.ActivityStatusCancelled, reloaded.Status, "deletion cancels instead of removing the row")
	assert.Equal(t, []domain.LogAction{domain.LogActionDeleted}, f.trailActions(t, seeded.ID))

	var reminderCount int64
	require.NoError(t, f.db.Model(&domain.Reminder{}).Where("activity_id = ?", seeded.ID).Count(&reminderCount).Error)
	assert.Zero(t, reminderCount, "stale reminders are cleared")

	err := svc.Delete(ctx, testRequest("DELETE", "/activities"), seeded.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition, "an already-cancelled activity cannot be deleted again")
}

func TestActivityGetByID_ScopeHidesRows(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()

	seeded := f.seedActivity(t, f.sp3, domain.ActivityStatusPlanned)

	// Group Beta has no teamlead, so lead cannot see sp3's work; the row
	// behaves exactly like a missing one.
	_, err := svc.GetByID(f.ctxFor(t, f.lead), seeded.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.GetTrail(f.ctxFor(t, f.lead), seeded.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	dto, err := svc.GetByID(f.ctxFor(t, f.avp), seeded.ID)
	require.NoError(t, err, "the team owner sees every group in the team")
	assert.Equal(t, seeded.ID, dto.ID)

	dto, err = svc.GetByID(f.ctxFor(t, f.admin), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, dto.ID)
}

func TestActivityBulkApply(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	leadCtx := f.ctxFor(t, f.lead)
	r := testRequest("POST", "/activities/bulk")

	t.Run("mixed batch reports per-item outcomes", func(t *testing.T) {
		a1 := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)
		a2 := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted)
		a3 := f.seedActivity(t, f.sp3, domain.ActivityStatusPlanned)
		missing := uuid.New()

		status := domain.ActivityStatusInProgress
		result, err := svc.BulkApply(leadCtx, r, &domain.BulkActivityRequest{
			ActivityIDs: []uuid.UUID{a1.ID, a2.ID, a3.ID, missing},
			Status:      &status,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Applied)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Items, 4)

		assert.Equal(t, domain.BulkOutcomeApplied, result.Items[0].Outcome)
		assert.Equal(t, domain.BulkOutcomeFailedInvalid, result.Items[1].Outcome)
		assert.Contains(t, result.Items[1].Detail, "completed")
		assert.Equal(t, domain.BulkOutcomeSkippedOutOfScope, result.Items[2].Outcome)
		assert.Equal(t, domain.BulkOutcomeSkippedOutOfScope, result.Items[3].Outcome,
			"missing ids read the same as out-of-scope ids")

		assert.Equal(t, domain.ActivityStatusInProgress, f.reloadActivity(t, a1.ID).Status)
		assert.Equal(t, domain.ActivityStatusCompleted, f.reloadActivity(t, a2.ID).Status)
		assert.Equal(t, domain.ActivityStatusPlanned, f.reloadActivity(t, a3.ID).Status)

		assert.Equal(t, []domain.LogAction{domain.LogActionBulkUpdated}, f.trailActions(t, a1.ID))
		assert.Empty(t, f.trailActions(t, a2.ID), "failed items leave no trail entry")
		assert.Empty(t, f.trailActions(t, a3.ID))
	})

	t.Run("bulk review marks completed activities", func(t *testing.T) {
		a := f.seedActivity(t, f.sp2, domain.ActivityStatusCompleted)

		notes := "reviewed in the weekly batch"
		result, err := svc.BulkApply(leadCtx, r, &domain.BulkActivityRequest{
			ActivityIDs: []uuid.UUID{a.ID},
			ReviewNotes: &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Applied)

		reloaded := f.reloadActivity(t, a.ID)
		assert.True(t, reloaded.Reviewed)
		assert.Equal(t, f.lead.DisplayName, reloaded.ReviewedByName)
		assert.Equal(t, notes, reloaded.ReviewNotes)
	})

	t.Run("exactly one instruction is required", func(t *testing.T) {
		a := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned)
		status := domain.ActivityStatusCancelled
		notes := "both at once"

		_, err := svc.BulkApply(leadCtx, r, &domain.BulkActivityRequest{
			ActivityIDs: []uuid.UUID{a.ID},
			Status:      &status,
			ReviewNotes: &notes,
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)

		_, err = svc.BulkApply(leadCtx, r, &domain.BulkActivityRequest{
			ActivityIDs: []uuid.UUID{a.ID},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("salespeople cannot bulk review", func(t *testing.T) {
		a := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted)
		notes := "self review"
		_, err := svc.BulkApply(f.ctxFor(t, f.sp1), r, &domain.BulkActivityRequest{
			ActivityIDs: []uuid.UUID{a.ID},
			ReviewNotes: &notes,
		})
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestActivityGetUpcoming(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	now := time.Now().UTC()

	plan := func(start time.Time) func(*domain.SalesActivity) {
		return func(a *domain.SalesActivity) {
			a.PlannedStart = start
			a.PlannedEnd = start.Add(time.Hour)
		}
	}

	tomorrow := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned, plan(now.Add(24*time.Hour)))
	inThree := f.seedActivity(t, f.sp1, domain.ActivityStatusInProgress, plan(now.Add(72*time.Hour)))
	f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned, plan(now.Add(20*24*time.Hour)))  // beyond horizon
	f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, plan(now.Add(24*time.Hour)))   // terminal
	f.seedActivity(t, f.sp2, domain.ActivityStatusPlanned, plan(now.Add(24*time.Hour)))     // someone else's

	dtos, err := svc.GetUpcoming(f.ctxFor(t, f.sp1), 7, 20)
	require.NoError(t, err)

	require.Len(t, dtos, 2)
	assert.Equal(t, tomorrow.ID, dtos[0].ID, "soonest first")
	assert.Equal(t, inThree.ID, dtos[1].ID)
}

func TestActivityList(t *testing.T) {
	f := setupFixture(t)
	svc := f.activityService()
	now := time.Now().UTC()

	plan := func(start time.Time) func(*domain.SalesActivity) {
		return func(a *domain.SalesActivity) {
			a.PlannedStart = start
			a.PlannedEnd = start.Add(time.Hour)
		}
	}

	early := f.seedActivity(t, f.sp1, domain.ActivityStatusPlanned, plan(now.Add(1*time.Hour)))
	mid := f.seedActivity(t, f.sp2, domain.ActivityStatusPlanned, plan(now.Add(2*time.Hour)))
	late := f.seedActivity(t, f.sp1, domain.ActivityStatusCompleted, plan(now.Add(3*time.Hour)))
	f.seedActivity(t, f.sp3, domain.ActivityStatusPlanned, plan(now.Add(4*time.Hour))) // out of lead's scope

	leadCtx := f.ctxFor(t, f.lead)

	t.Run("scope bounds the listing", func(t *testing.T) {
		resp, err := svc.List(leadCtx, 1, 20, nil, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)

		dtos := resp.Data.([]domain.ActivityDTO)
		require.Len(t, dtos, 3)
		assert.Equal(t, late.ID, dtos[0].ID, "newest planned start first")
		assert.Equal(t, mid.ID, dtos[1].ID)
		assert.Equal(t, early.ID, dtos[2].ID)
	})

	t.Run("sort by whitelisted field", func(t *testing.T) {
		resp, err := svc.List(leadCtx, 1, 20, nil, repository.SortConfig{
			Field: "plannedStart",
			Order: repository.SortOrderAsc,
		})
		require.NoError(t, err)

		dtos := resp.Data.([]domain.ActivityDTO)
		require.Len(t, dtos, 3)
		assert.Equal(t, early.ID, dtos[0].ID)
		assert.Equal(t, mid.ID, dtos[1].ID)
		assert.Equal(t, late.ID, dtos[2].ID)
	})

	t.Run("unknown sort field falls back to planned start", func(t *testing.T) {
		resp, err := svc.List(leadCtx, 1, 20, nil, repository.SortConfig{
			Field: "owner_id; DROP TABLE sales_activities",
			Order: repository.SortOrderDesc,
		})
		require.NoError(t, err)

		dtos := resp.Data.([]domain.ActivityDTO)
		require.Len(t, dtos, 3)
		assert.Equal(t, late.ID, dtos[0].ID)
		assert.Equal(t, mid.ID, dtos[1].ID)
		assert.Equal(t, early.ID, dtos[2].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		status := domain.ActivityStatusCompleted
		resp, err := svc.List(leadCtx, 1, 20, &repository.ActivityFilter{Status: &status}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := svc.List(leadCtx, 2, 2, nil, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 2, resp.TotalPages)

		dtos := resp.Data.([]domain.ActivityDTO)
		require.Len(t, dtos, 1)
		assert.Equal(t, early.ID, dtos[0].ID)
	})

	t.Run("page size is clamped", func(t *testing.T) {
		resp, err := svc.List(leadCtx, 0, 5000, nil, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, repository.MaxPageSize, resp.PageSize)
	})

	t.Run("admin sees the whole organization", func(t *testing.T) {
		resp, err := svc.List(f.ctxFor(t, f.admin), 1, 20, nil, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.Total)
	})
}
