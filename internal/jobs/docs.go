// Package jobs provides scheduled background tasks that run next to the parcel core.
//
// Jobs are built on github.com/robfig/cron/v3 and only call the core's query
// handlers; the core itself stays request-scoped.
//
// # Available Jobs
//
// 1. OverdueReportJob - Logs overdue parcels, overdue invoices and month-to-date revenue
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(jobs.Schedules{OverdueReport: "@hourly"}, reportHandlers, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds, or descriptors such as
// "@hourly" and "@every 10m".
//
// # Error Handling
//
// A failing run is logged and the next run proceeds normally.
package jobs
