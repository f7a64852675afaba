// Package catalog holds the read-side view of purchasable diamond packages.
// Catalog maintenance lives outside the storefront core; orders only read
// entries to snapshot the canonical price, and the best-seller listing reads
// them for display attributes.
package catalog

import (
	"errors"
	"strings"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one purchasable package, keyed by its unique name.
type Entry struct {
	name     string
	price    kernel.Price
	imageRef string

	isConstructed bool
}

// NewEntry validates a catalog entry. The image reference may be empty.
func NewEntry(name string, price kernel.Price, imageRef string) (Entry, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(
		validateName(name),
		price.Validate(),
	); err != nil {
		return Entry{}, err
	}

	return Entry{
		name:          name,
		price:         price,
		imageRef:      imageRef,
		isConstructed: true,
	}, nil
}

func (e Entry) Name() string {
	return e.name
}

func (e Entry) Price() kernel.Price {
	return e.price
}

func (e Entry) ImageRef() string {
	return e.imageRef
}

func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("package name")
	}
	return nil
}
