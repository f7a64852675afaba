// Package orderrepo persists order aggregates with GORM. It maps between the
// domain aggregate and the orders table.
package orderrepo

import (
	"time"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	BuyerName   string    `gorm:"not null"`
	PackageName string    `gorm:"index;not null"`
	UnitPrice   int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index;not null"`
	Status      string    `gorm:"type:varchar(32);index;not null"`
	ProofRef    *string
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var proofRef *string
	if proof := aggregate.Proof(); !proof.IsZero() {
		name := proof.String()
		proofRef = &name
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		BuyerID:     aggregate.BuyerID().Bytes(),
		BuyerName:   aggregate.BuyerName(),
		PackageName: aggregate.PackageName(),
		UnitPrice:   aggregate.UnitPrice().Amount(),
		CreatedAt:   aggregate.CreatedAt(),
		Status:      aggregate.Status().String(),
		ProofRef:    proofRef,
	}
}

// toDomain reconstructs the aggregate through RestoreOrder, so corrupted rows
// surface as validation errors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var proof order.ProofFilename
	if dto.ProofRef != nil {
		proof, err = order.RestoreProofFilename(*dto.ProofRef)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, buyerID, dto.BuyerName, dto.PackageName, price, dto.CreatedAt, status, proof)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
