// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field in the
// schedule expression.
//
// # Available Jobs
//
// ProofReconciliationJob runs the proof sweep: blobs no order references are
// deleted once they are older than the orphan grace period, and orders whose
// referenced blob is missing are logged at WARN.
//
// # Usage
//
//	reconcile := jobs.NewProofReconciliationJob(handler, cfg.ReconcileSchedule, cfg.OrphanGrace, logger)
//	jobManager := jobs.NewJobManager(reconcile)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. A job that fails to
// start stops the jobs started before it.
package jobs
