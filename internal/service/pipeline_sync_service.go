package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/meridian-crm/monitor-api/internal/domain"
	"github.com/meridian-crm/monitor-api/internal/repository"
	"github.com/meridian-crm/monitor-api/internal/warehouse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PipelineSyncService mirrors the pipeline warehouse into the local store.
// The warehouse is the system of record; local rows only add our ids and the
// owner/group references the scope filter needs.
type PipelineSyncService struct {
	warehouseClient *warehouse.Client
	pipelineRepo    *repository.PipelineRepository
	userRepo        *repository.UserRepository
	orgRepo         *repository.OrgRepository
	logger          *zap.Logger
}

// NewPipelineSyncService creates a new PipelineSyncService instance
func NewPipelineSyncService(
	warehouseClient *warehouse.Client,
	pipelineRepo *repository.PipelineRepository,
	userRepo *repository.UserRepository,
	orgRepo *repository.OrgRepository,
	logger *zap.Logger,
) *PipelineSyncService {
	return &PipelineSyncService{
		warehouseClient: warehouseClient,
		pipelineRepo:    pipelineRepo,
		userRepo:        userRepo,
		orgRepo:         orgRepo,
		logger:          logger,
	}
}

// SyncFromWarehouse fetches the full deal set and upserts it into the local
// mirror. Rows with unknown stages, outcomes or owners are skipped; open
// local rows that vanished from the warehouse are removed. Closed rows are
// never removed, they carry the revenue history.
func (s *PipelineSyncService) SyncFromWarehouse(ctx context.Context) (synced, skipped, failed int, err error) {
	if !s.warehouseClient.IsEnabled() {
		s.logger.Debug("pipeline warehouse disabled, skipping sync")
		return 0, 0, 0, nil
	}

	deals, err := s.warehouseClient.FetchDeals(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to fetch warehouse deals: %w", err)
	}

	// Owner lookups repeat heavily across deals; cache per run
	owners := make(map[string]*domain.User)
	groups := make(map[uuid.UUID]*uuid.UUID)

	keepIDs := make([]string, 0, len(deals))
	for i := range deals {
		row := &deals[i]
		keepIDs = append(keepIDs, row.DealID)

		stage := domain.FunnelStage(row.Stage)
		if !stage.IsValid() {
			s.logger.Warn("skipping deal with unknown stage",
				zap.String("deal_id", row.DealID),
				zap.String("stage", row.Stage))
			skipped++
			continue
		}
		outcome := domain.DealOutcome(row.Outcome)
		if !outcome.IsValid() {
			s.logger.Warn("skipping deal with unknown outcome",
				zap.String("deal_id", row.DealID),
				zap.String("outcome", row.Outcome))
			skipped++
			continue
		}

		owner, lookupErr := s.lookupOwner(ctx, owners, row.OwnerEmail)
		if lookupErr != nil {
			return synced, skipped, failed, lookupErr
		}
		if owner == nil {
			s.logger.Warn("skipping deal with unknown owner",
				zap.String("deal_id", row.DealID),
				zap.String("owner_email", row.OwnerEmail))
			skipped++
			continue
		}

		groupID, lookupErr := s.lookupGroup(ctx, groups, owner.ID)
		if lookupErr != nil {
			return synced, skipped, failed, lookupErr
		}

		record := &domain.PipelineRecord{
			DealID:         row.DealID,
			Title:          row.Title,
			Stage:          stage,
			Outcome:        outcome,
			Value:          row.Value,
			OwnerID:        owner.ID,
			GroupID:        groupID,
			StageEnteredAt: row.StageEnteredAt.UTC(),
			ClosedAt:       row.ClosedAt,
		}

		if upsertErr := s.pipelineRepo.UpsertByDealID(ctx, record); upsertErr != nil {
			s.logger.Error("failed to upsert pipeline record",
				zap.String("deal_id", row.DealID),
				zap.Error(upsertErr))
			failed++
			continue
		}
		synced++
	}

	removed, err := s.pipelineRepo.DeleteMissingOpen(ctx, keepIDs)
	if err != nil {
		return synced, skipped, failed, fmt.Errorf("failed to remove vanished deals: %w", err)
	}

	total, err := s.pipelineRepo.CountAll(ctx)
	if err != nil {
		return synced, skipped, failed, fmt.Errorf("failed to count mirrored records: %w", err)
	}

	s.logger.Info("pipeline warehouse sync finished",
		zap.Int("synced", synced),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Int64("removed", removed),
		zap.Int64("mirror_total", total))

	return synced, skipped, failed, nil
}

// lookupOwner resolves a warehouse owner email to a local user. A nil user
// with a nil error means the email is unknown here.
func (s *PipelineSyncService) lookupOwner(ctx context.Context, cache map[string]*domain.User, email string) (*domain.User, error) {
	if owner, ok := cache[email]; ok {
		return owner, nil
	}
	owner, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[email] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve deal owner %q: %w", email, err)
	}
	cache[email] = owner
	return owner, nil
}

func (s *PipelineSyncService) lookupGroup(ctx context.Context, cache map[uuid.UUID]*uuid.UUID, ownerID uuid.UUID) (*uuid.UUID, error) {
	if groupID, ok := cache[ownerID]; ok {
		return groupID, nil
	}
	membership, err := s.orgRepo.MembershipOf(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cache[ownerID] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve owner group: %w", err)
	}
	groupID := membership.GroupID
	cache[ownerID] = &groupID
	return &groupID, nil
}
