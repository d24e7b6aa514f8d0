package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DirectoryReloader re-reads a carrier directory from its source.
type DirectoryReloader interface {
	Reload() error
}

// TerminalsReloadJob refreshes the terminal directory nightly at 03:00. A
// failed reload keeps the previous snapshot, so the job only has to log
// the failure.
type TerminalsReloadJob struct {
	directory DirectoryReloader
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewTerminalsReloadJob creates the nightly reload job.
func NewTerminalsReloadJob(directory DirectoryReloader, logger *zap.Logger) *TerminalsReloadJob {
	return &TerminalsReloadJob{
		directory: directory,
		cron:      cron.New(),
		logger:    logger.With(zap.String("component", "terminals_reload_job")),
	}
}

// Start schedules the nightly reload.
func (j *TerminalsReloadJob) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		if err := j.directory.Reload(); err != nil {
			j.logger.Warn("terminals reload failed, keeping previous directory", zap.Error(err))
			return
		}
		j.logger.Info("terminals directory reloaded")
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("terminals reload job started")
	return nil
}

// Stop stops the reload job.
func (j *TerminalsReloadJob) Stop() {
	j.cron.Stop()
	j.logger.Info("terminals reload job stopped")
}
