package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// ReminderRepository handles database operations for reminders
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Upsert inserts the reminder or refreshes the existing row for the same
// (activity, kind) pair so the reminder job never piles up duplicates.
func (r *ReminderRepository) Upsert(ctx context.Context, reminder *domain.Reminder) error {
	var existing domain.Reminder
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND kind = ?", reminder.ActivityID, reminder.Kind).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(reminder).Error
	}

	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"owner_id": reminder.OwnerID,
		"group_id": reminder.GroupID,
		"message":  reminder.Message,
		"due_at":   reminder.DueAt,
	}

	return r.db.WithContext(ctx).Model(&domain.Reminder{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error
}

// ListInScope returns reminders for activity owners the actor may see,
// soonest due first
func (r *ReminderRepository) ListInScope(ctx context.Context, page, pageSize int) ([]domain.Reminder, int64, error) {
	var reminders []domain.Reminder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Reminder{})
	query = ApplyScopeFilter(ctx, query)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("due_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&reminders).Error

	return reminders, total, err
}

// DeleteForActivity removes the given reminder kinds for an activity. Called
// when a lifecycle change makes them stale, e.g. completing an activity
// clears its upcoming and overdue reminders.
func (r *ReminderRepository) DeleteForActivity(ctx context.Context, activityID uuid.UUID, kinds ...domain.ReminderKind) error {
	if len(kinds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("activity_id = ? AND kind IN ?", activityID, kinds).
		Delete(&domain.Reminder{}).Error
}

// DeleteOlderThan removes reminders whose due moment passed before the cutoff
func (r *ReminderRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("due_at < ?", before).
		Delete(&domain.Reminder{})
	return result.RowsAffected, result.Error
}
