// Package jobs provides scheduled background tasks for the laundry service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution schedules.
//
// # Available Jobs
//
// WorkOrderIntakeJob lists today's job queue (in the configured time zone) and opens a
// work order for every entry that does not have one yet. Its schedule comes from
// WORK_ORDER_INTAKE_SCHEDULE and defaults to every five minutes.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listJobQueueHandler, fromJobQueueHandler, schedule, loc, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. Per-entry failures inside a
// batch never abort the batch; entries removed from the queue mid-run are logged as
// warnings.
package jobs
