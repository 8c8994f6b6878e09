package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderArchiveJob *OrderArchiveJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	source ClosedOrderSource,
	archiver OrderArchiver,
	archiveDelay time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderArchiveJob: NewOrderArchiveJob(source, archiver, archiveDelay, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderArchiveJob.Start(); err != nil {
		return fmt.Errorf("failed to start order archive job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderArchiveJob.Stop()
}
