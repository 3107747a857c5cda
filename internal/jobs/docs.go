// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. DriverAssignmentJob - Runs every second to retry driver assignment for
// orders still awaiting one
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignDriverHandler, logger)
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
// The assignment job uses the cron expression "* * * * * *" which means it
// runs every second. Confirmed orders that found no driver right away are
// picked up on the next scan, so a busy evening never strands an order.
//
// # Error Handling
//
// - The assignment job ignores the expected no-eligible-driver outcome
// - Failed job starts will stop any already running jobs
package jobs
