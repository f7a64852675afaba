package commands

import (
	"context"
	"log/slog"

	"topup/internal/core/domain/model/identity"
)

// ConfirmOrderCommandHandler moves an order from AwaitingReview to Confirmed.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "confirm_order"),
	}
}

// Handle requires the admin role. A missing order yields errs.ErrObjectNotFound
// and any status other than AwaitingReview yields errs.ErrConflict; neither
// writes to the ledger.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := identity.RequireRole(cmd.Actor(), identity.RoleAdmin); err != nil {
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
	if err != nil {
		return err
	}

	if err = o.Confirm(); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order confirmed",
		"order_id", o.ID().String(),
		"admin", cmd.Actor().Username,
	)
	return nil
}
