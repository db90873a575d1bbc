package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderJobName is the name of the reminder scan job
const ReminderJobName = "reminder_scan"

// defaultScanTimeout bounds one reminder scan pass
const defaultScanTimeout = 2 * time.Minute

// ReminderScanner evaluates the reminder conditions across the store
type ReminderScanner interface {
	// Scan upserts reminder rows for every matching activity and returns how
	// many were raised.
	Scan(ctx context.Context, now time.Time) (int, error)
}

// ReminderJob runs the reminder scan on a schedule
type ReminderJob struct {
	scanner ReminderScanner
	logger  *zap.Logger
}

// NewReminderJob creates a new reminder scan job
func NewReminderJob(scanner ReminderScanner, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		scanner: scanner,
		logger:  logger,
	}
}

// Run executes one reminder scan.
// This is called by the scheduler according to the cron expression.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultScanTimeout)
	defer cancel()

	start := time.Now()

	raised, err := j.scanner.Scan(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("reminder scan failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("reminder scan job completed",
		zap.Int("raised", raised),
		zap.Duration("duration", time.Since(start)))
}

// RegisterReminderJob registers the reminder scan with the scheduler
func RegisterReminderJob(scheduler *Scheduler, scanner ReminderScanner, logger *zap.Logger, cronExpr string) error {
	job := NewReminderJob(scanner, logger)
	return scheduler.AddJob(ReminderJobName, cronExpr, job.Run)
}
