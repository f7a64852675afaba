package queries

import (
	"errors"

	"topup/internal/core/domain/model/identity"
	"topup/internal/pkg/guard"
)

var (
	ErrGetAllOrdersQueryIsNotConstructed = errors.New(
		"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
	)
)

// GetAllOrdersQuery is the admin view of the whole ledger.
type GetAllOrdersQuery struct {
	actor identity.Identity

	guard guard.ConstructorGuard
}

func NewGetAllOrdersQuery(actor identity.Identity) GetAllOrdersQuery {
	return GetAllOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

func (q GetAllOrdersQuery) Actor() identity.Identity {
	return q.actor
}
