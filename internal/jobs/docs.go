// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the transactional core requires.
//
// # Available Jobs
//
// 1. SubscriptionExpiryJob - Runs hourly to lapse Pending subscription
// requests the kitchen never answered.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, requestMaxAge, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The expiry job logs failures and tries again on the next tick; a
// request that races a concurrent kitchen decision is skipped inside the
// command handler, so the job never overrides an explicit approval or
// rejection.
package jobs
