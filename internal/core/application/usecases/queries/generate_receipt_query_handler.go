package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"topup/internal/core/ports"
	"topup/internal/pkg/errs"
)

// OrderReader loads one order on behalf of an actor.
type OrderReader interface {
	Handle(ctx context.Context, query GetOrderQuery) (OrderView, error)
}

// ReceiptFile is a rendered receipt and the name it was stored under.
type ReceiptFile struct {
	Filename string
	Content  []byte
}

// ReceiptFilename is the name a receipt for orderID is stored under.
func ReceiptFilename(orderID string) string {
	return fmt.Sprintf("transaction_%s.pdf", orderID)
}

// GenerateReceiptQueryHandler renders a receipt, writes it to the receipt
// store (overwriting any previous copy) and returns it.
type GenerateReceiptQueryHandler struct {
	orders   OrderReader
	proofs   ports.BlobStore
	renderer ports.ReceiptRenderer
	receipts ports.BlobStore
	logger   *slog.Logger
}

func NewGenerateReceiptQueryHandler(
	orders OrderReader,
	proofs ports.BlobStore,
	renderer ports.ReceiptRenderer,
	receipts ports.BlobStore,
	logger *slog.Logger,
) GenerateReceiptQueryHandler {
	return GenerateReceiptQueryHandler{
		orders:   orders,
		proofs:   proofs,
		renderer: renderer,
		receipts: receipts,
		logger:   logger.With("component", "generate_receipt"),
	}
}

func (h GenerateReceiptQueryHandler) Handle(ctx context.Context, query GenerateReceiptQuery) (ReceiptFile, error) {
	if err := query.Validate(); err != nil {
		return ReceiptFile{}, err
	}

	getOrder, err := NewGetOrderQuery(query.Actor(), query.OrderID())
	if err != nil {
		return ReceiptFile{}, err
	}
	view, err := h.orders.Handle(ctx, getOrder)
	if err != nil {
		return ReceiptFile{}, err
	}

	receipt := ports.Receipt{
		OrderID:     view.ID.String(),
		BuyerName:   view.BuyerName,
		PackageName: view.PackageName,
		TotalPrice:  view.UnitPrice.Format(),
		PurchasedAt: view.CreatedAt,
		Status:      view.Status.String(),
		HasProof:    view.ProofRef != "",
	}

	if receipt.HasProof {
		image, err := h.proofs.Read(ctx, view.ProofRef)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			h.logger.WarnContext(ctx, "proof blob missing for receipt",
				"order_id", receipt.OrderID,
				"proof", view.ProofRef)
		case err != nil:
			return ReceiptFile{}, err
		default:
			receipt.ProofImage = image
		}
	}

	content, err := h.renderer.Render(receipt)
	if err != nil {
		return ReceiptFile{}, err
	}

	filename := ReceiptFilename(receipt.OrderID)
	if err := h.receipts.Save(ctx, filename, content); err != nil {
		return ReceiptFile{}, err
	}

	h.logger.InfoContext(ctx, "receipt generated",
		"order_id", receipt.OrderID,
		"bytes", len(content))
	return ReceiptFile{Filename: filename, Content: content}, nil
}
