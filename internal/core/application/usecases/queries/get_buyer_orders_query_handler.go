package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBuyerOrdersQueryHandler reads one buyer's orders in the order they were placed.
type GetBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetBuyerOrdersQueryHandler(db *gorm.DB) GetBuyerOrdersQueryHandler {
	return GetBuyerOrdersQueryHandler{db: db}
}

// Handle returns an empty list for the anonymous identity.
func (h GetBuyerOrdersQueryHandler) Handle(ctx context.Context, query GetBuyerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Actor().IsAuthenticated() {
		return []OrderView{}, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderViewColumns+`
		FROM orders
		WHERE buyer_id = ?
		ORDER BY created_at, id
	`, query.Actor().UserID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderViews(rows)
}
