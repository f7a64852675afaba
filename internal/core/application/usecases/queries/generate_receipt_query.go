package queries

import (
	"errors"

	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/guard"
)

var (
	ErrGenerateReceiptQueryIsNotConstructed = errors.New(
		"GenerateReceiptQuery must be created via NewGenerateReceiptQuery constructor",
	)
)

// GenerateReceiptQuery renders the PDF receipt of one order.
type GenerateReceiptQuery struct {
	actor   identity.Identity
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateReceiptQuery(actor identity.Identity, orderID kernel.UUID) (GenerateReceiptQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateReceiptQuery{}, err
	}
	return GenerateReceiptQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GenerateReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGenerateReceiptQueryIsNotConstructed)
}

func (q GenerateReceiptQuery) Actor() identity.Identity {
	return q.actor
}

func (q GenerateReceiptQuery) OrderID() kernel.UUID {
	return q.orderID
}
