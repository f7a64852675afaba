package commands

import (
	"context"
	"errors"
	"log/slog"

	"topup/internal/core/domain/model/identity"
	"topup/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes an order from the ledger. The proof blob
// is left for the reconciliation sweep.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "delete_order"),
	}
}

// Handle is idempotent: deleting an order that does not exist succeeds.
// Buyers may delete their own unconfirmed orders; admins may delete any.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireAuthenticated(cmd.Actor()); err != nil {
		return err
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = o.CanBeDeletedBy(cmd.Actor()); err != nil {
		return err
	}

	if err = repo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order deleted",
		"order_id", o.ID().String(),
		"by", cmd.Actor().Username,
	)
	return nil
}
