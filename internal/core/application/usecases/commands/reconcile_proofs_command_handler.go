package commands

import (
	"context"
	"errors"
	"log/slog"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/ports"
	"topup/internal/pkg/clock"
	"topup/internal/pkg/errs"
)

// ReconcileProofsResult summarizes one sweep.
type ReconcileProofsResult struct {
	// OrphansRemoved counts deleted blobs that no order referenced.
	OrphansRemoved int
	// OrphansPending counts unreferenced blobs still inside the grace period.
	OrphansPending int
	// Dangling lists orders whose proof blob is missing from storage.
	Dangling []kernel.UUID
}

// ReconcileProofsCommandHandler repairs divergence between the blob store and
// the ledger. Orphaned blobs are deleted once older than the grace period,
// which protects uploads whose ledger update has not committed yet. Dangling
// references are only reported; the receipt shows a placeholder for them.
type ReconcileProofsCommandHandler struct {
	uowFactory OrderUoWFactory
	blobs      ports.BlobStore
	clock      clock.Clock
	logger     *slog.Logger
}

func NewReconcileProofsCommandHandler(
	uowFactory OrderUoWFactory,
	blobs ports.BlobStore,
	clk clock.Clock,
	logger *slog.Logger,
) ReconcileProofsCommandHandler {
	return ReconcileProofsCommandHandler{
		uowFactory: uowFactory,
		blobs:      blobs,
		clock:      clk,
		logger:     logger.With("component", "reconcile_proofs"),
	}
}

// Handle lists blobs before references, so a blob saved during the sweep is
// either unlisted or younger than the grace period. An orphan is stat'ed again
// right before deletion and kept if it changed since the listing.
func (h ReconcileProofsCommandHandler) Handle(ctx context.Context, cmd ReconcileProofsCommand) (ReconcileProofsResult, error) {
	var result ReconcileProofsResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	blobs, err := h.blobs.List(ctx)
	if err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	refs, err := uow.OrderRepository().ListProofRefs(ctx)
	if err != nil {
		return result, err
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, proof := range refs {
		referenced[proof.String()] = struct{}{}
	}

	stored := make(map[string]struct{}, len(blobs))
	now := h.clock.Now()
	for _, blob := range blobs {
		stored[blob.Name] = struct{}{}
		if _, ok := referenced[blob.Name]; ok {
			continue
		}
		if now.Sub(blob.ModTime) < cmd.OrphanGrace() {
			result.OrphansPending++
			continue
		}

		current, statErr := h.blobs.Stat(ctx, blob.Name)
		if errors.Is(statErr, errs.ErrObjectNotFound) {
			continue
		}
		if statErr != nil {
			return result, statErr
		}
		if !current.ModTime.Equal(blob.ModTime) || now.Sub(current.ModTime) < cmd.OrphanGrace() {
			result.OrphansPending++
			h.logger.InfoContext(ctx, "orphaned proof blob changed during sweep, keeping it",
				"proof", blob.Name,
				"modified_at", current.ModTime,
			)
			continue
		}

		if err = h.blobs.Delete(ctx, blob.Name); err != nil {
			return result, err
		}
		result.OrphansRemoved++
		h.logger.InfoContext(ctx, "removed orphaned proof blob",
			"proof", blob.Name,
			"modified_at", blob.ModTime,
		)
	}

	for orderID, proof := range refs {
		if _, ok := stored[proof.String()]; ok {
			continue
		}
		result.Dangling = append(result.Dangling, orderID)
		h.logger.WarnContext(ctx, "order references a missing proof blob",
			"order_id", orderID.String(),
			"proof", proof.String(),
		)
	}

	return result, nil
}
