package queries

import (
	"errors"

	"topup/internal/core/domain/services"
	"topup/internal/pkg/guard"
)

var (
	ErrGetBestSellersQueryIsNotConstructed = errors.New(
		"GetBestSellersQuery must be created via NewGetBestSellersQuery constructor",
	)
)

// GetBestSellersQuery asks for the n most purchased packages.
type GetBestSellersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetBestSellersQuery(limit int) (GetBestSellersQuery, error) {
	if err := services.NewBestSellerRanker().ValidateLimit(limit); err != nil {
		return GetBestSellersQuery{}, err
	}
	return GetBestSellersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBestSellersQuery) Validate() error {
	return q.guard.Validate(ErrGetBestSellersQueryIsNotConstructed)
}

func (q GetBestSellersQuery) Limit() int {
	return q.limit
}
