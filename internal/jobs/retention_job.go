package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/repository"
)

// RetentionJob periodically removes import batches and logs older than
// the retention window.
type RetentionJob struct {
	repo      repository.ImportLogRepositoryInterface
	retention time.Duration
	interval  time.Duration
	logger    *logrus.Logger
	stopCh    chan struct{}
}

// NewRetentionJob creates a new retention job
func NewRetentionJob(repo repository.ImportLogRepositoryInterface, retentionDays int, logger *logrus.Logger) *RetentionJob {
	return &RetentionJob{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  24 * time.Hour,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the cleanup loop until the context is cancelled or Stop is
// called. One cleanup pass runs immediately on start.
func (j *RetentionJob) Start(ctx context.Context) {
	j.logger.WithField("retention", j.retention.String()).Info("Starting import log retention job")

	j.runOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runOnce(ctx)
		case <-j.stopCh:
			j.logger.Info("Import log retention job stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Import log retention job stopped")
			return
		}
	}
}

// Stop signals the cleanup loop to exit.
func (j *RetentionJob) Stop() {
	close(j.stopCh)
}

func (j *RetentionJob) runOnce(ctx context.Context) {
	removed, err := j.repo.CleanOldLogs(ctx, j.retention)
	if err != nil {
		j.logger.WithError(err).Error("Import log cleanup failed")
		return
	}
	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Cleaned old import logs")
	}
}
