// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. OrderArchiveJob - Scans every five seconds for closed orders and
// archives each one a fixed delay after it closed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(orderRepo, &autoArchiveHandler, jobs.DefaultArchiveDelay, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The archive job combines a coarse cron scan ("*/5 * * * * *") with one
// precise timer per discovered order, so archival lands close to the
// configured delay without polling every second.
//
// # Error Handling
//
// Scan and archival failures are logged and retried on the next scan; the
// archive write is idempotent, so repeats are harmless.
package jobs
