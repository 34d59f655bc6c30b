// Package jobs provides scheduled background tasks for the freight
// operations service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// StatusEventRelayJob publishes status events that were committed with a
// dispatch or a status change, oldest first, and marks them published. A
// failed pass leaves its batch unpublished for the next tick.
//
// # Usage
//
//	relay := jobs.NewStatusEventRelayJob(publishHandler, "*/5 * * * * *", 100, m, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
