package kernel

import (
	"fmt"

	"topup/internal/pkg/errs"
)

// ErrPriceIsNotConstructed is returned when validating a zero-value Price.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError("Price must be created via NewPrice")

// Price is a whole amount of rupiah. The storefront sells in one currency and
// never deals in fractions, so the amount is an integer.
//
// Example:
//
//	price, err := kernel.NewPrice(15000)
//	fmt.Println(price.Format()) // Rp15000,00
type Price struct {
	amount int64
}

// NewPrice validates that the amount is positive.
func NewPrice(amount int64) (Price, error) {
	if amount <= 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid",
			fmt.Errorf("%d is not greater than 0", amount),
		)
	}
	return Price{amount: amount}, nil
}

// Amount returns the price in rupiah.
func (p Price) Amount() int64 {
	return p.amount
}

// Format renders the price the way receipts show it: "Rp15000,00".
func (p Price) Format() string {
	return fmt.Sprintf("Rp%d,00", p.amount)
}

// IsEqual compares two prices by amount.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}

// Validate returns ErrPriceIsNotConstructed for the zero value.
func (p Price) Validate() error {
	if p.amount <= 0 {
		return ErrPriceIsNotConstructed
	}
	return nil
}
