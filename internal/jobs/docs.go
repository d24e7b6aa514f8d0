// Package jobs provides scheduled background tasks for the quote engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to keep carrier-facing state warm between user requests.
//
// # Available Jobs
//
// 1. TokenWarmupJob - Runs hourly to refresh OAuth carrier tokens before they expire
// 2. TerminalsReloadJob - Runs nightly at 03:00 to re-read the terminal directory dump
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(tokenSources, terminals, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs treat failures as transient: a failed token warmup leaves the
// refresh to the next user request, and a failed directory reload keeps the
// previous snapshot. Failures are logged, never fatal.
package jobs
