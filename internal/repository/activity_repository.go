package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityFilter represents filter options for querying sales activities
type ActivityFilter struct {
	Kind             *domain.ActivityKind
	Status           *domain.ActivityStatus
	Priority         *domain.Priority
	OwnerID          *uuid.UUID
	GroupID          *uuid.UUID
	PlannedFrom      *time.Time
	PlannedTo        *time.Time
	Reviewed         *bool
	FollowUpRequired *bool
	OverdueAt        *time.Time
	Search           string
}

// activitySortableFields maps API field names to database column names.
// Only fields in this map can be used for sorting (whitelist approach)
var activitySortableFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"title":        "title",
	"kind":         "kind",
	"status":       "status",
	"priority":     "priority",
	"ownerName":    "owner_name",
	"plannedStart": "planned_start",
	"plannedEnd":   "planned_end",
}

// ActivityRepository handles database operations for sales activities. Every
// read goes through the scope filter, so an out-of-scope record behaves
// exactly like a missing one.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.SalesActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesActivity, error) {
	var activity domain.SalesActivity
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyScopeFilter(ctx, query)
	err := query.First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// Update persists field edits on an existing activity
func (r *ActivityRepository) Update(ctx context.Context, activity *domain.SalesActivity) error {
	// Verify the activity exists and the actor may see it
	existing, err := r.GetByID(ctx, activity.ID)
	if err != nil {
		return fmt.Errorf("activity not found: %w", err)
	}

	// Preserve created_at and the immutable owner from the original
	activity.CreatedAt = existing.CreatedAt
	activity.OwnerID = existing.OwnerID
	activity.OwnerName = existing.OwnerName

	return r.db.WithContext(ctx).Save(activity).Error
}

// List retrieves activities visible to the actor, matching the provided
// filters, with pagination. All filter fields are optional; sort fields
// outside the whitelist fall back to planned start.
func (r *ActivityRepository) List(ctx context.Context, filter *ActivityFilter, sort SortConfig, page, pageSize int) ([]domain.SalesActivity, int64, error) {
	var activities []domain.SalesActivity
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.SalesActivity{})
	query = ApplyScopeFilter(ctx, query)

	if filter != nil {
		query = r.applyFilters(query, filter)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting activities: %w", err)
	}

	orderClause := BuildOrderClause(sort, activitySortableFields, "planned_start")

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order(orderClause).
		Find(&activities).Error

	if err != nil {
		return nil, 0, fmt.Errorf("fetching activities: %w", err)
	}

	return activities, total, nil
}

// ListByIDs loads activities by id without scope filtering. Bulk operations
// check scope per item so they can report out-of-scope ids instead of
// silently dropping them.
func (r *ActivityRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.SalesActivity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var activities []domain.SalesActivity
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&activities).Error
	return activities, err
}

// ListForPeriod returns the in-scope activities whose planned start falls in
// [start, end). Aggregation attributes an activity to the period that
// contains its planned start.
func (r *ActivityRepository) ListForPeriod(ctx context.Context, start, end time.Time) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity
	query := r.db.WithContext(ctx).
		Where("planned_start >= ? AND planned_start < ?", start, end)
	query = ApplyScopeFilter(ctx, query)
	err := query.Order("planned_start ASC").Find(&activities).Error
	return activities, err
}

// GetUpcoming retrieves in-scope activities planned to start within the given
// number of days ahead. Results are ordered by planned_start ascending.
func (r *ActivityRepository) GetUpcoming(ctx context.Context, ownerID uuid.UUID, daysAhead int, limit int) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity

	now := time.Now().UTC()
	endDate := now.AddDate(0, 0, daysAhead)

	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("planned_start >= ?", now).
		Where("planned_start <= ?", endDate).
		Where("status NOT IN ?", []domain.ActivityStatus{
			domain.ActivityStatusCompleted,
			domain.ActivityStatusCancelled,
		})
	query = ApplyScopeFilter(ctx, query)

	err := query.Order("planned_start ASC").
		Limit(limit).
		Find(&activities).Error

	if err != nil {
		return nil, fmt.Errorf("fetching upcoming activities: %w", err)
	}

	return activities, nil
}

// ListStartingBetween returns activities across the whole store whose planned
// start falls in the window. Used by the reminder job, which runs outside any
// request scope.
func (r *ActivityRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity
	err := r.db.WithContext(ctx).
		Where("planned_start >= ? AND planned_start < ?", from, to).
		Where("status IN ?", []domain.ActivityStatus{
			domain.ActivityStatusPlanned,
			domain.ActivityStatusInProgress,
		}).
		Order("planned_start ASC").
		Find(&activities).Error
	return activities, err
}

// ListOverdueAll returns every activity in the store that is past its planned
// end and still open. Used by the reminder job.
func (r *ActivityRepository) ListOverdueAll(ctx context.Context, now time.Time) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity
	err := r.db.WithContext(ctx).
		Where("planned_end < ?", now).
		Where("status NOT IN ?", []domain.ActivityStatus{
			domain.ActivityStatusCompleted,
			domain.ActivityStatusCancelled,
		}).
		Order("planned_end ASC").
		Find(&activities).Error
	return activities, err
}

// ListFollowUpPending returns completed activities flagged for follow-up.
// Used by the reminder job.
func (r *ActivityRepository) ListFollowUpPending(ctx context.Context) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity
	err := r.db.WithContext(ctx).
		Where("follow_up_required = ?", true).
		Where("status = ?", domain.ActivityStatusCompleted).
		Order("actual_end ASC").
		Find(&activities).Error
	return activities, err
}

// ListUnreviewedCompletedBefore returns completed activities that finished
// before the cutoff and have not been reviewed. Used by the reminder job.
func (r *ActivityRepository) ListUnreviewedCompletedBefore(ctx context.Context, cutoff time.Time) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.ActivityStatusCompleted).
		Where("reviewed = ?", false).
		Where("actual_end < ?", cutoff).
		Order("actual_end ASC").
		Find(&activities).Error
	return activities, err
}

// applyFilters applies all non-nil filter values to the query
func (r *ActivityRepository) applyFilters(query *gorm.DB, filter *ActivityFilter) *gorm.DB {
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}

	if filter.PlannedFrom != nil {
		query = query.Where("planned_start >= ?", *filter.PlannedFrom)
	}

	if filter.PlannedTo != nil {
		query = query.Where("planned_start < ?", *filter.PlannedTo)
	}

	if filter.Reviewed != nil {
		query = query.Where("reviewed = ?", *filter.Reviewed)
	}

	if filter.FollowUpRequired != nil {
		query = query.Where("follow_up_required = ?", *filter.FollowUpRequired)
	}

	if filter.OverdueAt != nil {
		query = query.Where("planned_end < ?", *filter.OverdueAt).
			Where("status NOT IN ?", []domain.ActivityStatus{
				domain.ActivityStatusCompleted,
				domain.ActivityStatusCancelled,
			})
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(customer_ref) LIKE ?", pattern, pattern)
	}

	return query
}
