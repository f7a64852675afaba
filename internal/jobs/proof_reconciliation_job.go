package jobs

import (
	"context"
	"log/slog"
	"time"

	"topup/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the sweep every ten minutes. The expression
// carries a seconds field.
const DefaultReconcileSchedule = "0 */10 * * * *"

// ReconcileProofsHandler runs one reconciliation sweep.
type ReconcileProofsHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileProofsCommand) (commands.ReconcileProofsResult, error)
}

// ProofReconciliationJob periodically removes orphaned proof blobs and
// reports orders whose proof blob has gone missing.
type ProofReconciliationJob struct {
	handler     ReconcileProofsHandler
	schedule    string
	orphanGrace time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewProofReconciliationJob(
	handler ReconcileProofsHandler,
	schedule string,
	orphanGrace time.Duration,
	logger *slog.Logger,
) *ProofReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ProofReconciliationJob{
		handler:     handler,
		schedule:    schedule,
		orphanGrace: orphanGrace,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "proof_reconciliation_job"),
	}
}

// Start registers the sweep on its schedule and starts the scheduler.
func (j *ProofReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Proof reconciliation job started",
		"schedule", j.schedule,
		"orphan_grace", j.orphanGrace.String())
	return nil
}

// RunOnce performs a single sweep and logs its outcome.
func (j *ProofReconciliationJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewReconcileProofsCommand(j.orphanGrace)
	if err != nil {
		j.logger.ErrorContext(ctx, "Proof reconciliation misconfigured", "error", err)
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Proof reconciliation failed", "error", err)
		return err
	}

	for _, id := range result.Dangling {
		j.logger.WarnContext(ctx, "Order references a missing proof", "order_id", id.String())
	}
	if result.OrphansRemoved > 0 || len(result.Dangling) > 0 {
		j.logger.InfoContext(ctx, "Proof reconciliation finished",
			"orphans_removed", result.OrphansRemoved,
			"orphans_pending", result.OrphansPending,
			"dangling", len(result.Dangling))
	}
	return nil
}

// Stop stops the scheduler and waits for a running sweep to return.
func (j *ProofReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Proof reconciliation job stopped")
}
