package queries

import (
	"errors"

	"topup/internal/core/domain/model/identity"
	"topup/internal/pkg/guard"
)

var (
	ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
		"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
	)
)

// GetBuyerOrdersQuery lists the orders of the requesting buyer.
type GetBuyerOrdersQuery struct {
	actor identity.Identity

	guard guard.ConstructorGuard
}

// NewGetBuyerOrdersQuery accepts the anonymous identity, which sees no orders.
func NewGetBuyerOrdersQuery(actor identity.Identity) GetBuyerOrdersQuery {
	return GetBuyerOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

func (q GetBuyerOrdersQuery) Actor() identity.Identity {
	return q.actor
}
