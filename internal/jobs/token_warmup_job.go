package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenSource exchanges or returns a cached carrier API token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenWarmupJob refreshes OAuth carrier tokens every hour so the first
// user request after an expiry does not pay the exchange round trip.
// A failed warmup is only logged: the next calculation will retry the
// exchange on its own.
type TokenWarmupJob struct {
	sources map[string]TokenSource
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewTokenWarmupJob creates the warmup job for the given token sources,
// keyed by carrier name.
func NewTokenWarmupJob(sources map[string]TokenSource, logger *zap.Logger) *TokenWarmupJob {
	return &TokenWarmupJob{
		sources: sources,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "token_warmup_job")),
	}
}

// Start schedules the hourly warmup and runs one immediately.
func (j *TokenWarmupJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", j.run)
	if err != nil {
		return err
	}

	go j.run()
	j.cron.Start()
	j.logger.Info("token warmup job started")
	return nil
}

// Stop stops the warmup job.
func (j *TokenWarmupJob) Stop() {
	j.cron.Stop()
	j.logger.Info("token warmup job stopped")
}

func (j *TokenWarmupJob) run() {
	ctx := context.Background()
	for carrier, source := range j.sources {
		if _, err := source.Token(ctx); err != nil {
			j.logger.Warn("token warmup failed",
				zap.String("carrier", carrier), zap.Error(err))
		}
	}
}
