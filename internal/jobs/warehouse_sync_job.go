package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WarehouseSyncJobName is the name of the pipeline warehouse sync job
const WarehouseSyncJobName = "warehouse_sync"

// PipelineSyncer mirrors warehouse deals into the local store. The interface
// lets the job run without importing the service package directly.
type PipelineSyncer interface {
	// SyncFromWarehouse runs one mirror pass and reports how many deals were
	// upserted, skipped and failed.
	SyncFromWarehouse(ctx context.Context) (synced, skipped, failed int, err error)
}

// WarehouseSyncJob runs the pipeline warehouse mirror on a schedule
type WarehouseSyncJob struct {
	syncer  PipelineSyncer
	logger  *zap.Logger
	timeout time.Duration
}

// NewWarehouseSyncJob creates a new warehouse sync job.
// The timeout controls how long one mirror pass is allowed to run.
func NewWarehouseSyncJob(syncer PipelineSyncer, logger *zap.Logger, timeout time.Duration) *WarehouseSyncJob {
	return &WarehouseSyncJob{
		syncer:  syncer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one mirror pass.
// This is called by the scheduler according to the cron expression.
func (j *WarehouseSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	synced, skipped, failed, err := j.syncer.SyncFromWarehouse(ctx)
	if err != nil {
		j.logger.Error("pipeline warehouse sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("pipeline warehouse sync job completed",
		zap.Int("synced", synced),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterWarehouseSyncJob registers the mirror with the scheduler. When
// runStartupSync is true, one pass runs immediately in a background goroutine
// so the funnel is fresh without waiting for the first scheduled run.
func RegisterWarehouseSyncJob(scheduler *Scheduler, syncer PipelineSyncer, logger *zap.Logger, cronExpr string, timeout time.Duration, runStartupSync bool) error {
	job := NewWarehouseSyncJob(syncer, logger, timeout)

	if runStartupSync {
		go job.Run()
	}

	return scheduler.AddJob(WarehouseSyncJobName, cronExpr, job.Run)
}
