package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityLogFilter represents filter options for querying the activity log
type ActivityLogFilter struct {
	ActorID       *uuid.UUID
	Action        *domain.LogAction
	ActivityID    *uuid.UUID
	StartTime     *time.Time
	EndTime       *time.Time
	RequestID     string
	MutationsOnly bool
}

// ActivityLogRepository handles activity log data access. The log is
// append-only; entries are never updated.
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create inserts a new log entry (append-only - no updates allowed)
func (r *ActivityLogRepository) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch inserts multiple log entries efficiently
func (r *ActivityLogRepository) CreateBatch(ctx context.Context, entries []*domain.ActivityLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

// List retrieves log entries with pagination and optional filters
func (r *ActivityLogRepository) List(ctx context.Context, filter *ActivityLogFilter, page, pageSize int) ([]domain.ActivityLogEntry, int64, error) {
	var entries []domain.ActivityLogEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ActivityLogEntry{})
	query = r.applyFilters(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("performed_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries).Error

	return entries, total, err
}

// ListByActivity retrieves the change trail of a single activity, oldest
// first, restricted to mutation actions. Read events (viewed, downloaded,
// access_denied) live in the same table but are not part of the trail.
func (r *ActivityLogRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityLogEntry, error) {
	var entries []domain.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Where("action IN ?", mutationActions()).
		Order("performed_at ASC").
		Find(&entries).Error
	return entries, err
}

// ListByActor retrieves recent log entries for a specific actor
func (r *ActivityLogRepository) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.ActivityLogEntry, error) {
	var entries []domain.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// CountByAction counts log entries grouped by action within a time range
func (r *ActivityLogRepository) CountByAction(ctx context.Context, start, end time.Time) (map[domain.LogAction]int64, error) {
	type result struct {
		Action domain.LogAction
		Count  int64
	}

	var results []result
	err := r.db.WithContext(ctx).Model(&domain.ActivityLogEntry{}).
		Select("action, COUNT(*) as count").
		Where("performed_at >= ? AND performed_at < ?", start, end).
		Group("action").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[domain.LogAction]int64)
	for _, r := range results {
		counts[r.Action] = r.Count
	}

	return counts, nil
}

// CountByActivity returns the number of trail entries per activity id.
// Feeding the activity list view with trail sizes without N+1 queries.
func (r *ActivityLogRepository) CountByActivity(ctx context.Context, activityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(activityIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	type result struct {
		ActivityID uuid.UUID
		Count      int64
	}

	var results []result
	err := r.db.WithContext(ctx).Model(&domain.ActivityLogEntry{}).
		Select("activity_id, COUNT(*) as count").
		Where("activity_id IN ?", activityIDs).
		Where("action IN ?", mutationActions()).
		Group("activity_id").
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		counts[r.ActivityID] = r.Count
	}

	return counts, nil
}

// applyFilters applies optional filters to the query
func (r *ActivityLogRepository) applyFilters(query *gorm.DB, filter *ActivityLogFilter) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}

	if filter.ActivityID != nil {
		query = query.Where("activity_id = ?", *filter.ActivityID)
	}

	if filter.StartTime != nil {
		query = query.Where("performed_at >= ?", *filter.StartTime)
	}

	if filter.EndTime != nil {
		query = query.Where("performed_at < ?", *filter.EndTime)
	}

	if filter.RequestID != "" {
		query = query.Where("request_id = ?", filter.RequestID)
	}

	if filter.MutationsOnly {
		query = query.Where("action IN ?", mutationActions())
	}

	return query
}

func mutationActions() []domain.LogAction {
	actions := make([]domain.LogAction, 0, len(domain.AllLogActions))
	for _, a := range domain.AllLogActions {
		if a.IsMutation() {
			actions = append(actions, a)
		}
	}
	return actions
}
