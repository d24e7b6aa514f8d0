package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tokenWarmupJob     *TokenWarmupJob
	terminalsReloadJob *TerminalsReloadJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	tokenSources map[string]TokenSource,
	terminals DirectoryReloader,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		tokenWarmupJob:     NewTokenWarmupJob(tokenSources, logger),
		terminalsReloadJob: NewTerminalsReloadJob(terminals, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tokenWarmupJob.Start(); err != nil {
		return fmt.Errorf("failed to start token warmup job: %w", err)
	}

	if err := jm.terminalsReloadJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.tokenWarmupJob.Stop()
		return fmt.Errorf("failed to start terminals reload job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.terminalsReloadJob.Stop()
	jm.tokenWarmupJob.Stop()
}
