package ports

import (
	"context"

	"topup/internal/core/domain/model/catalog"
)

// CatalogRepository is the read side of the package catalog plus seeding.
type CatalogRepository interface {
	// Get returns the entry with the given name or errs.ErrObjectNotFound.
	Get(ctx context.Context, name string) (catalog.Entry, error)

	// List returns every entry ordered by price, then name.
	List(ctx context.Context) ([]catalog.Entry, error)

	// Add inserts an entry. Adding a name that already exists leaves the stored entry untouched.
	Add(ctx context.Context, entry catalog.Entry) error
}
