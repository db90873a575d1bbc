package repository

import (
	"context"
	"time"

	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// PipelineRepository handles database operations for the funnel records
// mirrored from the data warehouse.
type PipelineRepository struct {
	db *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) *PipelineRepository {
	return &PipelineRepository{db: db}
}

// UpsertByDealID inserts the record or refreshes the existing row carrying
// the same warehouse deal id. The warehouse is the source of truth for every
// field except our row id and timestamps.
func (r *PipelineRepository) UpsertByDealID(ctx context.Context, record *domain.PipelineRecord) error {
	var existing domain.PipelineRecord
	err := r.db.WithContext(ctx).Where("deal_id = ?", record.DealID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(record).Error
	}

	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":            record.Title,
		"stage":            record.Stage,
		"outcome":          record.Outcome,
		"value":            record.Value,
		"owner_id":         record.OwnerID,
		"group_id":         record.GroupID,
		"stage_entered_at": record.StageEnteredAt,
		"closed_at":        record.ClosedAt,
	}

	return r.db.WithContext(ctx).Model(&domain.PipelineRecord{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error
}

// ListOpen returns the in-scope deals still in play
func (r *PipelineRepository) ListOpen(ctx context.Context) ([]domain.PipelineRecord, error) {
	var records []domain.PipelineRecord
	query := r.db.WithContext(ctx).
		Where("outcome = ?", domain.DealOutcomeOpen)
	query = ApplyScopeFilter(ctx, query)
	err := query.Order("stage_entered_at ASC").Find(&records).Error
	return records, err
}

// ListWonBetween returns the in-scope deals won with a close date in
// [start, end)
func (r *PipelineRepository) ListWonBetween(ctx context.Context, start, end time.Time) ([]domain.PipelineRecord, error) {
	var records []domain.PipelineRecord
	query := r.db.WithContext(ctx).
		Where("outcome = ?", domain.DealOutcomeWon).
		Where("closed_at >= ? AND closed_at < ?", start, end)
	query = ApplyScopeFilter(ctx, query)
	err := query.Order("closed_at ASC").Find(&records).Error
	return records, err
}

// CountAll returns the total number of mirrored records. Used by the sync
// job for progress logging.
func (r *PipelineRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PipelineRecord{}).Count(&count).Error
	return count, err
}

// DeleteMissingOpen removes open mirrored rows whose deal id no longer
// appears in the warehouse extract. Closed rows stay untouched; they carry
// the revenue history for past periods. Returns the number of rows removed.
func (r *PipelineRepository) DeleteMissingOpen(ctx context.Context, keepDealIDs []string) (int64, error) {
	if len(keepDealIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("outcome = ?", domain.DealOutcomeOpen).
		Where("deal_id NOT IN ?", keepDealIDs).
		Delete(&domain.PipelineRecord{})
	return result.RowsAffected, result.Error
}
