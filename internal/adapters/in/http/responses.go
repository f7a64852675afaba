package http

import (
	"time"

	"topup/internal/core/application/usecases/queries"
)

type orderResponse struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyer_id"`
	BuyerName   string    `json:"buyer_name"`
	PackageName string    `json:"package_name"`
	UnitPrice   int64     `json:"unit_price"`
	TotalPrice  string    `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	ProofRef    string    `json:"proof_ref,omitempty"`
}

func toOrderResponse(view queries.OrderView) orderResponse {
	return orderResponse{
		ID:          view.ID.String(),
		BuyerID:     view.BuyerID.String(),
		BuyerName:   view.BuyerName,
		PackageName: view.PackageName,
		UnitPrice:   view.UnitPrice.Amount(),
		TotalPrice:  view.UnitPrice.Format(),
		CreatedAt:   view.CreatedAt,
		Status:      view.Status.String(),
		ProofRef:    view.ProofRef,
	}
}

func toOrderResponses(views []queries.OrderView) []orderResponse {
	response := make([]orderResponse, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}
	return response
}

type catalogItemResponse struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageRef string `json:"image"`
}

type bestSellerResponse struct {
	catalogItemResponse
	PurchaseCount int `json:"purchase_count"`
}
