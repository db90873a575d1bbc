package service

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"go.uber.org/zap"
)

// reminderRetention is how long past-due reminder rows are kept before the
// scan sweeps them out
const reminderRetention = 30 * 24 * time.Hour

// ReminderService determines which activities need a nudge. It only raises
// reminder rows; delivering them is an external concern.
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
	activityRepo *repository.ActivityRepository
	upcomingLead time.Duration
	reviewAge    time.Duration
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService instance
func NewReminderService(
	reminderRepo *repository.ReminderRepository,
	activityRepo *repository.ActivityRepository,
	upcomingLead time.Duration,
	reviewAge time.Duration,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		activityRepo: activityRepo,
		upcomingLead: upcomingLead,
		reviewAge:    reviewAge,
		logger:       logger,
	}
}

// Scan evaluates the reminder conditions across the whole store and upserts
// one reminder row per (activity, kind). Re-running a scan refreshes existing
// rows instead of duplicating them. Returns the number of rows raised.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()
	raised := 0

	upcoming, err := s.activityRepo.ListStartingBetween(ctx, now, now.Add(s.upcomingLead))
	if err != nil {
		return raised, fmt.Errorf("failed to scan upcoming activities: %w", err)
	}
	for i := range upcoming {
		a := &upcoming[i]
		if a.Status != domain.ActivityStatusPlanned {
			continue
		}
		if err := s.raise(ctx, a, domain.ReminderKindUpcoming, a.PlannedStart,
			fmt.Sprintf("%q starts at %s", a.Title, a.PlannedStart.UTC().Format("2006-01-02 15:04"))); err != nil {
			return raised, err
		}
		raised++
	}

	overdue, err := s.activityRepo.ListOverdueAll(ctx, now)
	if err != nil {
		return raised, fmt.Errorf("failed to scan overdue activities: %w", err)
	}
	for i := range overdue {
		a := &overdue[i]
		if err := s.raise(ctx, a, domain.ReminderKindOverdue, a.PlannedEnd,
			fmt.Sprintf("%q passed its planned end on %s", a.Title, a.PlannedEnd.UTC().Format("2006-01-02"))); err != nil {
			return raised, err
		}
		raised++
	}

	followUps, err := s.activityRepo.ListFollowUpPending(ctx)
	if err != nil {
		return raised, fmt.Errorf("failed to scan follow-up activities: %w", err)
	}
	for i := range followUps {
		a := &followUps[i]
		dueAt := now
		if a.ActualEnd != nil {
			dueAt = *a.ActualEnd
		}
		if err := s.raise(ctx, a, domain.ReminderKindFollowUp, dueAt,
			fmt.Sprintf("%q is completed and flagged for follow-up", a.Title)); err != nil {
			return raised, err
		}
		raised++
	}

	unreviewed, err := s.activityRepo.ListUnreviewedCompletedBefore(ctx, now.Add(-s.reviewAge))
	if err != nil {
		return raised, fmt.Errorf("failed to scan unreviewed activities: %w", err)
	}
	for i := range unreviewed {
		a := &unreviewed[i]
		dueAt := now
		if a.ActualEnd != nil {
			dueAt = a.ActualEnd.Add(s.reviewAge)
		}
		if err := s.raise(ctx, a, domain.ReminderKindReviewNeeded, dueAt,
			fmt.Sprintf("%q awaits review", a.Title)); err != nil {
			return raised, err
		}
		raised++
	}

	swept, err := s.reminderRepo.DeleteOlderThan(ctx, now.Add(-reminderRetention))
	if err != nil {
		s.logger.Warn("failed to sweep expired reminders", zap.Error(err))
	}

	s.logger.Info("reminder scan finished",
		zap.Int("raised", raised),
		zap.Int64("swept", swept))

	return raised, nil
}

// List returns the pending reminders visible to the caller's scope
func (s *ReminderService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	reminders, total, err := s.reminderRepo.ListInScope(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	dtos := make([]domain.ReminderDTO, len(reminders))
	for i := range reminders {
		dtos[i] = mapper.ToReminderDTO(&reminders[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *ReminderService) raise(ctx context.Context, a *domain.SalesActivity, kind domain.ReminderKind, dueAt time.Time, message string) error {
	reminder := &domain.Reminder{
		ActivityID: a.ID,
		Kind:       kind,
		OwnerID:    a.OwnerID,
		GroupID:    a.GroupID,
		Message:    message,
		DueAt:      dueAt.UTC(),
	}
	if err := s.reminderRepo.Upsert(ctx, reminder); err != nil {
		return fmt.Errorf("failed to upsert %s reminder: %w", kind, err)
	}
	return nil
}
