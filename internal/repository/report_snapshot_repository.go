package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"gorm.io/gorm"
)

// ReportSnapshotRepository handles database operations for persisted report
// snapshots
type ReportSnapshotRepository struct {
	db *gorm.DB
}

func NewReportSnapshotRepository(db *gorm.DB) *ReportSnapshotRepository {
	return &ReportSnapshotRepository{db: db}
}

func (r *ReportSnapshotRepository) Create(ctx context.Context, snapshot *domain.ReportSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *ReportSnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSnapshot, error) {
	var snapshot domain.ReportSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListByRequester returns the snapshots a user generated, newest first
func (r *ReportSnapshotRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID, page, pageSize int) ([]domain.ReportSnapshot, int64, error) {
	var snapshots []domain.ReportSnapshot
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ReportSnapshot{}).
		Where("requested_by_id = ?", requesterID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("generated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&snapshots).Error

	return snapshots, total, err
}

// ListAll returns every snapshot, newest first. Admin surface only.
func (r *ReportSnapshotRepository) ListAll(ctx context.Context, page, pageSize int) ([]domain.ReportSnapshot, int64, error) {
	var snapshots []domain.ReportSnapshot
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ReportSnapshot{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("generated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&snapshots).Error

	return snapshots, total, err
}
