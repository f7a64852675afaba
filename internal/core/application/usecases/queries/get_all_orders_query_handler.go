package queries

import (
	"context"

	"topup/internal/core/domain/model/identity"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler reads every order, oldest first. Admin only.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := identity.RequireRole(query.Actor(), identity.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT` + orderViewColumns + `
		FROM orders
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderViews(rows)
}
