package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"topup/internal/core/domain/model/identity"
	"topup/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order for its buyer or an admin.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for a missing order and
// errs.ErrForbidden when a buyer asks for someone else's order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	actor := query.Actor()
	if err := identity.RequireAuthenticated(actor); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT`+orderViewColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Err(); err != nil {
		return OrderView{}, err
	}

	view, err := scanOrderView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderView{}, err
	}

	if !actor.IsAdmin() && !actor.Owns(view.BuyerID) {
		return OrderView{}, fmt.Errorf("%w: order belongs to another buyer", errs.ErrForbidden)
	}
	return view, nil
}
