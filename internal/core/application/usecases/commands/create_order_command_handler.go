package commands

import (
	"context"
	"log/slog"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/order"
	"topup/internal/pkg/clock"
)

// CreateOrderCommandHandler places a Pending order priced from the catalog.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle looks the package up in the catalog and stores a new order with the
// catalog's price. An unknown package yields errs.ErrObjectNotFound. A client
// price that disagrees with the catalog is logged and otherwise ignored.
// No duplicate detection is done: every call with a fresh id is a new order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	entry, err := uow.CatalogRepository().Get(ctx, cmd.PackageName())
	if err != nil {
		return err
	}

	if requested := cmd.RequestedPrice(); requested != 0 && requested != entry.Price().Amount() {
		h.logger.WarnContext(ctx, "requested price differs from catalog, using catalog price",
			"package", entry.Name(),
			"requested_price", requested,
			"catalog_price", entry.Price().Amount(),
			"buyer_id", cmd.Actor().UserID.String(),
		)
	}

	actor := cmd.Actor()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		actor.UserID,
		actor.DisplayName,
		entry.Name(),
		entry.Price(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", newOrder.ID().String(),
		"package", newOrder.PackageName(),
	)
	return nil
}
