package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/mapper"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"github.com/meridian-crm/monitor-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService serves aggregated reports, derived insights and persisted
// report snapshots
type ReportService struct {
	aggregationSvc *AggregationService
	insightSvc     *InsightService
	snapshotRepo   *repository.ReportSnapshotRepository
	store          storage.Storage
	logger         *zap.Logger
}

// NewReportService creates a new ReportService instance. The storage backend
// may be nil; snapshots then live in the database only.
func NewReportService(
	aggregationSvc *AggregationService,
	insightSvc *InsightService,
	snapshotRepo *repository.ReportSnapshotRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		aggregationSvc: aggregationSvc,
		insightSvc:     insightSvc,
		snapshotRepo:   snapshotRepo,
		store:          store,
		logger:         logger,
	}
}

// ParsePeriod builds a reporting period from inclusive date strings. The end
// date is extended by one day so the half-open window covers it fully.
func ParsePeriod(startStr, endStr string) (domain.Period, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: invalid start date %q", ErrInvalidPeriod, startStr)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: invalid end date %q", ErrInvalidPeriod, endStr)
	}

	period := domain.NewPeriod(start, end.AddDate(0, 0, 1))
	if !period.IsValid() {
		return domain.Period{}, fmt.Errorf("%w: end date precedes start date", ErrInvalidPeriod)
	}
	return period, nil
}

// Summary aggregates the caller's scope over the period
func (s *ReportService) Summary(ctx context.Context, period domain.Period, now time.Time) (*domain.ReportDTO, error) {
	report, err := s.aggregationSvc.BuildReport(ctx, period, now)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToReportDTO(report)
	return &dto, nil
}

// Insights derives recommendations from a fresh aggregation of the period
func (s *ReportService) Insights(ctx context.Context, period domain.Period, now time.Time) ([]domain.InsightDTO, error) {
	report, err := s.aggregationSvc.BuildReport(ctx, period, now)
	if err != nil {
		return nil, err
	}

	insights := s.insightSvc.Derive(report)
	dtos := make([]domain.InsightDTO, len(insights))
	for i := range insights {
		dtos[i] = mapper.ToInsightDTO(&insights[i])
	}
	return dtos, nil
}

// CreateSnapshot aggregates the period and persists the result for later
// retrieval. The full report document is archived to storage when a backend
// is configured; an archive failure degrades to a database-only snapshot.
func (s *ReportService) CreateSnapshot(ctx context.Context, req *domain.CreateSnapshotRequest, now time.Time) (*domain.ReportSnapshotDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	period, err := ParsePeriod(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	report, err := s.aggregationSvc.BuildReport(ctx, period, now)
	if err != nil {
		return nil, err
	}

	document, err := json.Marshal(mapper.ToReportDTO(report))
	if err != nil {
		return nil, fmt.Errorf("failed to encode report document: %w", err)
	}

	snapshot := &domain.ReportSnapshot{
		BaseModel:       domain.BaseModel{ID: uuid.New()},
		ScopeKey:        report.ScopeKey,
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
		Metrics:         string(document),
		GeneratedAt:     report.GeneratedAt,
		RequestedByID:   userCtx.UserID,
		RequestedByName: userCtx.DisplayName,
	}

	if s.store != nil {
		name := fmt.Sprintf("report-%s.json", snapshot.ID)
		path, _, err := s.store.Upload(ctx, name, "application/json", bytes.NewReader(document))
		if err != nil {
			s.logger.Warn("failed to archive report document",
				zap.String("snapshot_id", snapshot.ID.String()),
				zap.Error(err))
		} else {
			snapshot.StoragePath = path
		}
	}

	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save report snapshot: %w", err)
	}

	s.logger.Info("report snapshot created",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.String("scope_key", report.ScopeKey),
		zap.String("period", period.String()),
		zap.String("requested_by", userCtx.DisplayName))

	dto := mapper.ToReportSnapshotDTO(snapshot)
	return &dto, nil
}

func (s *ReportService) GetSnapshot(ctx context.Context, id uuid.UUID) (*domain.ReportSnapshotDTO, error) {
	snapshot, err := s.loadVisibleSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToReportSnapshotDTO(snapshot)
	return &dto, nil
}

func (s *ReportService) ListSnapshots(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	sc, _ := scope.FromContext(ctx)

	var (
		snapshots []domain.ReportSnapshot
		total     int64
		err       error
	)
	if sc != nil && sc.AllAccess {
		snapshots, total, err = s.snapshotRepo.ListAll(ctx, page, pageSize)
	} else {
		snapshots, total, err = s.snapshotRepo.ListByRequester(ctx, userCtx.UserID, page, pageSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list report snapshots: %w", err)
	}

	dtos := make([]domain.ReportSnapshotDTO, len(snapshots))
	for i := range snapshots {
		dtos[i] = mapper.ToReportSnapshotDTO(&snapshots[i])
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

// DownloadSnapshot streams the archived report document. Snapshots without an
// archive fall back to the document stored in the database.
func (s *ReportService) DownloadSnapshot(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	snapshot, err := s.loadVisibleSnapshot(ctx, id)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("report-%s.json", snapshot.ID)
	if snapshot.StoragePath != "" && s.store != nil {
		rc, err := s.store.Download(ctx, snapshot.StoragePath)
		if err == nil {
			return rc, filename, nil
		}
		s.logger.Warn("failed to read archived report, serving stored document",
			zap.String("snapshot_id", snapshot.ID.String()),
			zap.Error(err))
	}

	return io.NopCloser(strings.NewReader(snapshot.Metrics)), filename, nil
}

// loadVisibleSnapshot fetches a snapshot the caller may see. Snapshots are
// visible to their requester and to all-access actors; anything else surfaces
// as not found.
func (s *ReportService) loadVisibleSnapshot(ctx context.Context, id uuid.UUID) (*domain.ReportSnapshot, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	snapshot, err := s.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report snapshot: %w", err)
	}

	sc, _ := scope.FromContext(ctx)
	if snapshot.RequestedByID != userCtx.UserID && (sc == nil || !sc.AllAccess) {
		return nil, ErrNotFound
	}
	return snapshot, nil
}
