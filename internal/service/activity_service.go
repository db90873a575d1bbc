package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status transition rules: defines valid transitions between activity statuses
var validStatusTransitions = map[domain.ActivityStatus][]domain.ActivityStatus{
	domain.ActivityStatusPlanned:    {domain.ActivityStatusInProgress, domain.ActivityStatusCancelled, domain.ActivityStatusPostponed},
	domain.ActivityStatusInProgress: {domain.ActivityStatusCompleted, domain.ActivityStatusCancelled, domain.ActivityStatusPostponed},
	domain.ActivityStatusCompleted:  {}, // Reopen only
	domain.ActivityStatusCancelled:  {}, // Reopen only
	domain.ActivityStatusPostponed:  {}, // Reopen only
}

// ActivityService drives the sales activity lifecycle. Every successful
// mutation writes the activity and exactly one log entry in the same
// transaction; failed attempts leave both untouched.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	orgRepo      *repository.OrgRepository
	userRepo     *repository.UserRepository
	reminderRepo *repository.ReminderRepository
	logSvc       *ActivityLogService
	logger       *zap.Logger
	db           *gorm.DB
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(
	activityRepo *repository.ActivityRepository,
	orgRepo *repository.OrgRepository,
	userRepo *repository.UserRepository,
	reminderRepo *repository.ReminderRepository,
	logSvc *ActivityLogService,
	logger *zap.Logger,
	db *gorm.DB,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		logSvc:       logSvc,
		logger:       logger,
		db:           db,
	}
}

func (s *ActivityService) Create(ctx context.Context, r *http.Request, req *domain.CreateActivityRequest) (*domain.ActivityDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return nil, ErrPermissionDenied
	}

	ownerID := userCtx.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}
	if ownerID != userCtx.UserID && !sc.CanMutateUser(ownerID) {
		return nil, fmt.Errorf("%w: owner is outside your scope", ErrPermissionDenied)
	}

	if req.PlannedEnd.Before(req.PlannedStart) {
		return nil, fmt.Errorf("%w: planned end precedes planned start", ErrInvalidInput)
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if !owner.IsActive {
		return nil, fmt.Errorf("%w: owner account is disabled", ErrInvalidInput)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	activity := &domain.SalesActivity{
		Title:        req.Title,
		Description:  req.Description,
		Kind:         req.Kind,
		Status:       domain.ActivityStatusPlanned,
		Priority:     priority,
		OwnerID:      ownerID,
		OwnerName:    owner.FullName(),
		CustomerRef:  req.CustomerRef,
		PlannedStart: req.PlannedStart.UTC(),
		PlannedEnd:   req.PlannedEnd.UTC(),
	}

	// Denormalize the owner's group so scope queries avoid a join
	if membership, err := s.orgRepo.MembershipOf(ctx, ownerID); err == nil {
		activity.GroupID = &membership.GroupID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("failed to load owner membership",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}
		row := s.logSvc.BuildEntry(ctx, r, LogEntry{
			Action:     domain.LogActionCreated,
			ActivityID: activity.ID,
			NewValues:  activitySnapshot(activity),
		})
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.logger.Info("activity created",
		zap.String("activity_id", activity.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("kind", string(activity.Kind)),
		zap.String("created_by", userCtx.DisplayName))

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

// GetTrail returns the mutation trail of a visible activity, oldest first
func (s *ActivityService) GetTrail(ctx context.Context, id uuid.UUID) ([]domain.ActivityLogEntryDTO, error) {
	if _, err := s.activityRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	entries, err := s.logSvc.GetTrail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity trail: %w", err)
	}

	dtos := make([]domain.ActivityLogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = mapper.ToActivityLogEntryDTO(&e)
	}
	return dtos, nil
}

// GetWithTrail returns the export document of one activity plus its trail
func (s *ActivityService) GetWithTrail(ctx context.Context, id uuid.UUID) (*domain.ActivityWithTrailDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	entries, err := s.logSvc.GetTrail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity trail: %w", err)
	}

	trail := make([]domain.ActivityLogEntryDTO, len(entries))
	for i, e := range entries {
		trail[i] = mapper.ToActivityLogEntryDTO(&e)
	}

	return &domain.ActivityWithTrailDTO{
		Activity: mapper.ToActivityDTO(activity),
		Trail:    trail,
	}, nil
}

func (s *ActivityService) List(ctx context.Context, page, pageSize int, filter *repository.ActivityFilter, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	// Clamp page size
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	activities, total, err := s.activityRepo.List(ctx, filter, sort, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i, activity := range activities {
		dtos[i] = mapper.ToActivityDTO(&activity)
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

// GetUpcoming returns the caller's own open activities starting within the
// given horizon
func (s *ActivityService) GetUpcoming(ctx context.Context, daysAhead, limit int) ([]domain.ActivityDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if daysAhead < 1 {
		daysAhead = 7
	}
	if limit < 1 || limit > repository.MaxPageSize {
		limit = 20
	}

	activities, err := s.activityRepo.GetUpcoming(ctx, userCtx.UserID, daysAhead, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i, activity := range activities {
		dtos[i] = mapper.ToActivityDTO(&activity)
	}
	return dtos, nil
}

func (s *ActivityService) Update(ctx context.Context, r *http.Request, id uuid.UUID, req *domain.UpdateActivityRequest) (*domain.ActivityDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	sc, ok := scope.FromContext(ctx)
	if !ok || !sc.CanMutateUser(activity.OwnerID) {
		return nil, ErrPermissionDenied
	}

	if req.PlannedEnd.Before(req.PlannedStart) {
		return nil, fmt.Errorf("%w: planned end precedes planned start", ErrInvalidInput)
	}

	oldValues := activitySnapshot(activity)

	// Status, owner, and review fields are never edited here; status moves
	// through the transition endpoints and the review state through Review
	activity.Title = req.Title
	activity.Description = req.Description
	activity.Kind = req.Kind
	activity.Priority = req.Priority
	activity.CustomerRef = req.CustomerRef
	activity.PlannedStart = req.PlannedStart.UTC()
	activity.PlannedEnd = req.PlannedEnd.UTC()
	if req.FollowUpRequired != nil {
		activity.FollowUpRequired = *req.FollowUpRequired
	}

	if err := s.persistAndLog(ctx, r, activity, LogEntry{
		Action:     domain.LogActionUpdated,
		ActivityID: activity.ID,
		OldValues:  oldValues,
		NewValues:  activitySnapshot(activity),
	}); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

// Delete cancels the activity and logs the action as a deletion. Rows are
// never physically removed; the cancelled status plus the trail is the
// deletion-equivalent.
func (s *ActivityService) Delete(ctx context.Context, r *http.Request, id uuid.UUID) error {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get activity: %w", err)
	}

	sc, ok := scope.FromContext(ctx)
	if !ok || !sc.CanMutateUser(activity.OwnerID) {
		return ErrPermissionDenied
	}

	if activity.Status == domain.ActivityStatusCancelled {
		return fmt.Errorf("%w: activity is already cancelled", ErrInvalidTransition)
	}

	oldValues := activitySnapshot(activity)
	activity.Status = domain.ActivityStatusCancelled

	if err := s.persistAndLog(ctx, r, activity, LogEntry{
		Action:     domain.LogActionDeleted,
		ActivityID: activity.ID,
		OldValues:  oldValues,
		NewValues:  activitySnapshot(activity),
	}); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.clearReminders(ctx, activity.ID,
		domain.ReminderKindUpcoming,
		domain.ReminderKindOverdue,
		domain.ReminderKindFollowUp,
		domain.ReminderKindReviewNeeded)

	s.logger.Info("activity deleted",
		zap.String("activity_id", activity.ID.String()),
		zap.String("owner_id", activity.OwnerID.String()))

	return nil
}

// Start moves a planned activity into progress and records the actual start
func (s *ActivityService) Start(ctx context.Context, r *http.Request, id uuid.UUID) (*domain.ActivityDTO, error) {
	return s.applyTransition(ctx, r, id, domain.ActivityStatusInProgress, nil)
}

// Complete finishes an in-progress activity. The actual end defaults to the
// server clock and must not precede the actual start.
func (s *ActivityService) Complete(ctx context.Context, r *http.Request, id uuid.UUID, req *domain.CompleteActivityRequest) (*domain.ActivityDTO, error) {
	var actualEnd *time.Time
	if req != nil {
		actualEnd = req.ActualEnd
	}
	return s.applyTransition(ctx, r, id, domain.ActivityStatusCompleted, actualEnd)
}

func (s *ActivityService) Cancel(ctx context.Context, r *http.Request, id uuid.UUID) (*domain.ActivityDTO, error) {
	return s.applyTransition(ctx, r, id, domain.ActivityStatusCancelled, nil)
}

func (s *ActivityService) Postpone(ctx context.Context, r *http.Request, id uuid.UUID) (*domain.ActivityDTO, error) {
	return s.applyTransition(ctx, r, id, domain.ActivityStatusPostponed, nil)
}

// Reopen returns a terminal activity to planned. Actual timestamps and the
// review state are cleared; the trail keeps the full history.
func (s *ActivityService) Reopen(ctx context.Context, r *http.Request, id uuid.UUID) (*domain.ActivityDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	sc, ok := scope.FromContext(ctx)
	if !ok || !sc.CanMutateUser(activity.OwnerID) {
		return nil, ErrPermissionDenied
	}

	if !activity.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: only completed, cancelled or postponed activities can be reopened", ErrInvalidTransition)
	}

	oldStatus := activity.Status
	oldValues := activitySnapshot(activity)

	activity.Status = domain.ActivityStatusPlanned
	activity.ActualStart = nil
	activity.ActualEnd = nil
	activity.Reviewed = false
	activity.ReviewedByID = nil
	activity.ReviewedByName = ""
	activity.ReviewNotes = ""
	activity.ReviewedAt = nil

	if err := s.persistAndLog(ctx, r, activity, LogEntry{
		Action:     domain.LogActionStatusChanged,
		ActivityID: activity.ID,
		OldValues:  oldValues,
		NewValues:  activitySnapshot(activity),
	}); err != nil {
		return nil, fmt.Errorf("failed to reopen activity: %w", err)
	}

	s.clearReminders(ctx, activity.ID,
		domain.ReminderKindFollowUp,
		domain.ReminderKindReviewNeeded)

	s.logger.Info("activity reopened",
		zap.String("activity_id", activity.ID.String()),
		zap.String("from_status", string(oldStatus)))

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

// Review marks the activity as reviewed by the calling actor. Reviewing an
// already-reviewed activity overwrites the notes; both reviews stay in the
// trail as separate entries.
func (s *ActivityService) Review(ctx context.Context, r *http.Request, id uuid.UUID, req *domain.ReviewActivityRequest) (*domain.ActivityDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.CanReview() {
		return nil, fmt.Errorf("%w: role %s cannot review activities", ErrPermissionDenied, userCtx.Role)
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	now := time.Now().UTC()
	oldValues := activitySnapshot(activity)

	rereview := activity.Reviewed

	activity.Reviewed = true
	activity.ReviewedByID = &userCtx.UserID
	activity.ReviewedByName = userCtx.DisplayName
	activity.ReviewNotes = req.Notes
	activity.ReviewedAt = &now

	if err := s.persistAndLog(ctx, r, activity, LogEntry{
		Action:     domain.LogActionReviewed,
		ActivityID: activity.ID,
		OldValues:  oldValues,
		NewValues:  activitySnapshot(activity),
	}); err != nil {
		return nil, fmt.Errorf("failed to review activity: %w", err)
	}

	s.clearReminders(ctx, activity.ID, domain.ReminderKindReviewNeeded)

	s.logger.Info("activity reviewed",
		zap.String("activity_id", activity.ID.String()),
		zap.String("reviewer", userCtx.DisplayName),
		zap.Bool("rereview", rereview))

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

// applyTransition validates and applies one status change, then persists the
// activity and its log entry atomically
func (s *ActivityService) applyTransition(ctx context.Context, r *http.Request, id uuid.UUID, target domain.ActivityStatus, actualEnd *time.Time) (*domain.ActivityDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	sc, ok := scope.FromContext(ctx)
	if !ok || !sc.CanMutateUser(activity.OwnerID) {
		return nil, ErrPermissionDenied
	}

	if !s.isValidTransition(activity.Status, target) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, activity.Status, target)
	}

	now := time.Now().UTC()
	oldStatus := activity.Status
	oldValues := activitySnapshot(activity)

	switch target {
	case domain.ActivityStatusInProgress:
		activity.ActualStart = &now
	case domain.ActivityStatusCompleted:
		end := now
		if actualEnd != nil {
			end = actualEnd.UTC()
		}
		if activity.ActualStart != nil && end.Before(*activity.ActualStart) {
			return nil, fmt.Errorf("%w: actual end precedes actual start", ErrInconsistentState)
		}
		activity.ActualEnd = &end
	}
	activity.Status = target

	if err := s.persistAndLog(ctx, r, activity, LogEntry{
		Action:     domain.LogActionStatusChanged,
		ActivityID: activity.ID,
		OldValues:  oldValues,
		NewValues:  activitySnapshot(activity),
	}); err != nil {
		return nil, fmt.Errorf("failed to update activity status: %w", err)
	}

	if target.IsTerminal() {
		s.clearReminders(ctx, activity.ID,
			domain.ReminderKindUpcoming,
			domain.ReminderKindOverdue)
	}

	s.logger.Info("activity status changed",
		zap.String("activity_id", activity.ID.String()),
		zap.String("from_status", string(oldStatus)),
		zap.String("to_status", string(target)))

	dto := mapper.ToActivityDTO(activity)
	return &dto, nil
}

// persistAndLog writes the activity and its log entry in one transaction so
// the trail never diverges from the stored state
func (s *ActivityService) persistAndLog(ctx context.Context, r *http.Request, activity *domain.SalesActivity, entry LogEntry) error {
	row := s.logSvc.BuildEntry(ctx, r, entry)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activity).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
}

func (s *ActivityService) isValidTransition(from, to domain.ActivityStatus) bool {
	validNextStatuses, ok := validStatusTransitions[from]
	if !ok {
		return false
	}

	for _, validStatus := range validNextStatuses {
		if validStatus == to {
			return true
		}
	}
	return false
}

// clearReminders drops reminder rows a lifecycle change made stale. Reminder
// bookkeeping never blocks the mutation itself.
func (s *ActivityService) clearReminders(ctx context.Context, activityID uuid.UUID, kinds ...domain.ReminderKind) {
	if s.reminderRepo == nil {
		return
	}
	if err := s.reminderRepo.DeleteForActivity(ctx, activityID, kinds...); err != nil {
		s.logger.Warn("failed to clear stale reminders",
			zap.String("activity_id", activityID.String()),
			zap.Error(err))
	}
}

// activitySnapshot captures the loggable fields of an activity for the
// before/after images on trail entries
func activitySnapshot(a *domain.SalesActivity) map[string]interface{} {
	snap := map[string]interface{}{
		"title":              a.Title,
		"description":        a.Description,
		"kind":               string(a.Kind),
		"status":             string(a.Status),
		"priority":           string(a.Priority),
		"customer_ref":       a.CustomerRef,
		"planned_start":      a.PlannedStart.UTC().Format(time.RFC3339),
		"planned_end":        a.PlannedEnd.UTC().Format(time.RFC3339),
		"reviewed":           a.Reviewed,
		"follow_up_required": a.FollowUpRequired,
	}

	if a.ActualStart != nil {
		snap["actual_start"] = a.ActualStart.UTC().Format(time.RFC3339)
	}
	if a.ActualEnd != nil {
		snap["actual_end"] = a.ActualEnd.UTC().Format(time.RFC3339)
	}
	if a.Reviewed {
		snap["reviewed_by"] = a.ReviewedByName
		snap["review_notes"] = a.ReviewNotes
	}

	return snap
}
