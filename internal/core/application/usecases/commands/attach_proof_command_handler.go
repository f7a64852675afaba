package commands

import (
	"context"
	"fmt"
	"log/slog"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/ports"
	"topup/internal/pkg/errs"
)

// DefaultMaxProofBytes bounds a single proof upload.
const DefaultMaxProofBytes int64 = 5 << 20

// AttachProofCommandHandler stores a proof image and moves the order to
// AwaitingReview.
//
// The blob and the ledger are separate resources. The blob is written first
// and the ledger update second; when the update fails a blob created by this
// call is removed again. Anything left behind by a crash between the two
// writes is cleaned up by ReconcileProofsCommandHandler.
type AttachProofCommandHandler struct {
	uowFactory    OrderUoWFactory
	blobs         ports.BlobStore
	maxProofBytes int64
	logger        *slog.Logger
}

// NewAttachProofCommandHandler uses DefaultMaxProofBytes when maxProofBytes <= 0.
func NewAttachProofCommandHandler(
	uowFactory OrderUoWFactory,
	blobs ports.BlobStore,
	maxProofBytes int64,
	logger *slog.Logger,
) AttachProofCommandHandler {
	if maxProofBytes <= 0 {
		maxProofBytes = DefaultMaxProofBytes
	}
	return AttachProofCommandHandler{
		uowFactory:    uowFactory,
		blobs:         blobs,
		maxProofBytes: maxProofBytes,
		logger:        logger.With("component", "attach_proof"),
	}
}

// Handle validates everything it can before touching storage: size, order
// existence, ownership and the status transition.
func (h AttachProofCommandHandler) Handle(ctx context.Context, cmd AttachProofCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireAuthenticated(cmd.Actor()); err != nil {
		return err
	}
	if size := int64(len(cmd.Data())); size > h.maxProofBytes {
		return errs.NewInvalidMediaErrorWithCause(
			cmd.Proof().String(),
			fmt.Errorf("file is %d bytes, limit is %d", size, h.maxProofBytes),
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.CanBeViewedBy(cmd.Actor()); err != nil {
		return err
	}

	if err = o.AttachProof(cmd.Proof()); err != nil {
		return err
	}

	blobName := cmd.Proof().String()
	existed, err := h.blobs.Exists(ctx, blobName)
	if err != nil {
		return err
	}

	if err = h.blobs.Save(ctx, blobName, cmd.Data()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		h.compensate(ctx, blobName, existed, err)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.compensate(ctx, blobName, existed, err)
		return err
	}

	h.logger.InfoContext(ctx, "proof attached",
		"order_id", o.ID().String(),
		"proof", blobName,
		"bytes", len(cmd.Data()),
	)
	return nil
}

// compensate removes a blob this call created. An overwritten blob is left in
// place since its previous content is gone either way.
func (h AttachProofCommandHandler) compensate(ctx context.Context, blobName string, existed bool, cause error) {
	if existed {
		h.logger.WarnContext(ctx, "ledger update failed after overwriting proof blob",
			"proof", blobName, "error", cause)
		return
	}
	if err := h.blobs.Delete(ctx, blobName); err != nil {
		h.logger.ErrorContext(ctx, "failed to remove proof blob after ledger update failure",
			"proof", blobName, "error", err, "cause", cause)
		return
	}
	h.logger.WarnContext(ctx, "removed proof blob after ledger update failure",
		"proof", blobName, "error", cause)
}
