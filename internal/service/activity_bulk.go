package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BulkApply applies one instruction to many activities. The caller's scope is
// resolved once for the whole batch; each item is then checked, applied and
// logged in its own transaction so one bad item never rolls back the others.
func (s *ActivityService) BulkApply(ctx context.Context, r *http.Request, req *domain.BulkActivityRequest) (*domain.BulkResultDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return nil, ErrPermissionDenied
	}

	if (req.Status == nil) == (req.ReviewNotes == nil) {
		return nil, fmt.Errorf("%w: exactly one of status or reviewNotes must be provided", ErrInvalidInput)
	}
	if req.ReviewNotes != nil && !userCtx.CanReview() {
		return nil, fmt.Errorf("%w: role %s cannot review activities", ErrPermissionDenied, userCtx.Role)
	}

	activities, err := s.activityRepo.ListByIDs(ctx, req.ActivityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.SalesActivity, len(activities))
	for i := range activities {
		byID[activities[i].ID] = &activities[i]
	}

	result := &domain.BulkResultDTO{
		Items: make([]domain.BulkItemResultDTO, 0, len(req.ActivityIDs)),
	}

	for _, id := range req.ActivityIDs {
		item := domain.BulkItemResultDTO{ActivityID: id}

		activity, found := byID[id]
		// Missing rows and out-of-scope rows are reported identically so the
		// response does not reveal which activity IDs exist
		if !found || !sc.CanMutateUser(activity.OwnerID) {
			item.Outcome = domain.BulkOutcomeSkippedOutOfScope
			result.Skipped++
			result.Items = append(result.Items, item)
			continue
		}

		outcome, detail := s.applyBulkItem(ctx, r, userCtx, activity, req)
		item.Outcome = outcome
		item.Detail = detail
		switch outcome {
		case domain.BulkOutcomeApplied:
			result.Applied++
		case domain.BulkOutcomeSkippedOutOfScope:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}

	s.logger.Info("bulk instruction processed",
		zap.Int("requested", len(req.ActivityIDs)),
		zap.Int("applied", result.Applied),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.String("actor", userCtx.DisplayName))

	return result, nil
}

// applyBulkItem mutates one activity under the batch instruction, writing the
// row and its log entry in one transaction
func (s *ActivityService) applyBulkItem(ctx context.Context, r *http.Request, userCtx *auth.UserContext, activity *domain.SalesActivity, req *domain.BulkActivityRequest) (domain.BulkItemOutcome, string) {
	now := time.Now().UTC()
	oldValues := activitySnapshot(activity)

	if req.Status != nil {
		target := *req.Status
		if !s.isValidTransition(activity.Status, target) {
			return domain.BulkOutcomeFailedInvalid, fmt.Sprintf("cannot transition from %s to %s", activity.Status, target)
		}
		switch target {
		case domain.ActivityStatusInProgress:
			activity.ActualStart = &now
		case domain.ActivityStatusCompleted:
			if activity.ActualStart != nil && now.Before(*activity.ActualStart) {
				return domain.BulkOutcomeFailedInvalid, "actual end precedes actual start"
			}
			end := now
			activity.ActualEnd = &end
		}
		activity.Status = target
	} else {
		activity.Reviewed = true
		activity.ReviewedByID = &userCtx.UserID
		activity.ReviewedByName = userCtx.DisplayName
		activity.ReviewNotes = *req.ReviewNotes
		activity.ReviewedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activity).Error; err != nil {
			return err
		}
		row := s.logSvc.BuildEntry(ctx, r, LogEntry{
			Action:     domain.LogActionBulkUpdated,
			ActivityID: activity.ID,
			OldValues:  oldValues,
			NewValues:  activitySnapshot(activity),
		})
		return tx.Create(row).Error
	})
	if err != nil {
		s.logger.Error("bulk item failed to persist",
			zap.String("activity_id", activity.ID.String()),
			zap.Error(err))
		return domain.BulkOutcomeFailedInvalid, "storage failure"
	}

	if req.Status != nil && req.Status.IsTerminal() {
		s.clearReminders(ctx, activity.ID,
			domain.ReminderKindUpcoming,
			domain.ReminderKindOverdue)
	}
	if req.ReviewNotes != nil {
		s.clearReminders(ctx, activity.ID, domain.ReminderKindReviewNeeded)
	}

	return domain.BulkOutcomeApplied, ""
}
